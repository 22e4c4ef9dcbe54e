package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person a prescription can be issued for. Patient records are
// shared across the deployment, not scoped to the doctor who created them.
type Patient struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CPF       string     `json:"cpf"`
	Phone     string     `json:"phone"`
	Email     *string    `json:"email,omitempty"`
	Address   *string    `json:"address,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreateRequest is the payload for registering a patient.
type CreateRequest struct {
	Name      string     `json:"name"`
	CPF       string     `json:"cpf"`
	Phone     string     `json:"phone"`
	Email     *string    `json:"email"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birthDate"`
}
