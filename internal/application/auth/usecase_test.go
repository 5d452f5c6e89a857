package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/camstock-api/internal/application/auth"
	"github.com/jhoicas/camstock-api/internal/application/dto"
	"github.com/jhoicas/camstock-api/internal/domain"
	"github.com/jhoicas/camstock-api/internal/domain/entity"
)

// lockedUsers repo en memoria; Register decide el rol bajo el mismo mutex que inserta.
type lockedUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newLockedUsers() *lockedUsers { return &lockedUsers{users: map[string]*entity.User{}} }

func (r *lockedUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *lockedUsers) Register(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if len(r.users) == 0 {
		u.Role = entity.RoleAdmin
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *lockedUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *lockedUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *lockedUsers) Update(ctx context.Context, u *entity.User) error { return r.Create(ctx, u) }

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_PrimeroAdminLuegoUser(t *testing.T) {
	uc := auth.NewAuthUseCase(newLockedUsers(), auth.JWTConfig{Secret: "s", ExpMinutes: 5})
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: " Ana@CamStock.io ", Password: "cambiar123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, first.Role)
	assert.Equal(t, "ana@camstock.io", first.Email)

	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Beto", Email: "beto@camstock.io", Password: "cambiar123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, second.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@camstock.io", Password: "cambiar123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_ConcurrenteUnSoloAdmin(t *testing.T) {
	repo := newLockedUsers()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: "s", ExpMinutes: 5})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
				Name: fmt.Sprintf("u%d", i), Email: fmt.Sprintf("u%d@camstock.io", i), Password: "cambiar123",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	admins := 0
	for _, u := range repo.users {
		if u.Role == entity.RoleAdmin {
			admins++
		}
	}
	assert.Len(t, repo.users, 8)
	assert.Equal(t, 1, admins)
}
