package medlibrary

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the entry is absent or owned by another user.
	ErrNotFound = errors.New("library entry not found")
	// ErrDuplicateName is returned when the user already has an entry with
	// the same name.
	ErrDuplicateName = errors.New("library entry name already exists")
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Entry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Entry, error)
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*Entry, error)
	// ExistsByName reports whether the user has an entry with the given name,
	// ignoring case, excluding the given id (uuid.Nil excludes nothing).
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
