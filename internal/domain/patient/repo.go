package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no matching patient row exists.
	ErrNotFound = errors.New("patient not found")
	// ErrDuplicateCPF is returned when a CPF is already registered.
	ErrDuplicateCPF = errors.New("cpf already registered")
	// ErrValidation is wrapped around field-level validation failures.
	ErrValidation = errors.New("validation failed")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	// Search returns the requested page plus the total match count.
	Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)
}
