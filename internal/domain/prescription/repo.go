package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound covers both absent prescriptions and prescriptions owned
	// by another doctor. Callers cannot tell the cases apart.
	ErrNotFound = errors.New("prescription not found")
	// ErrValidation is wrapped around field-level validation failures.
	ErrValidation = errors.New("validation failed")
	// ErrRenderFailed is wrapped around PDF generation failures.
	ErrRenderFailed = errors.New("pdf generation failed")
)

type Repository interface {
	// Create inserts the prescription and its medications atomically.
	Create(ctx context.Context, p *Prescription) error
	// GetByID returns the doctor's prescription with medications in
	// insertion order.
	GetByID(ctx context.Context, doctorID, id uuid.UUID) (*Prescription, error)
	// ListByDoctor returns a page of the doctor's prescriptions, newest
	// first, with the patient's name and CPF joined in, plus the doctor's
	// total count. Medications are not loaded.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	// Update rewrites type and instructions and replaces the whole
	// medication set in one transaction.
	Update(ctx context.Context, p *Prescription) error
}
