package repository

import (
	"context"

	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Register inserta un usuario nuevo de forma atómica respecto de otros registros:
	// si la tabla está vacía queda como admin. Deja en user.Role el rol asignado.
	Register(ctx context.Context, user *entity.User) error
}
