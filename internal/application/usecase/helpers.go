package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/camstock-api/internal/domain"
)

// invalid envuelve ErrInvalidInput con un mensaje para el cliente.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

// validID informa si id es un UUID bien formado.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
