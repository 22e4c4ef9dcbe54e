package prescription

import (
	"time"

	"github.com/google/uuid"

	"github.com/receita/receita/internal/domain/patient"
)

const (
	TypeSimple         = "simple"
	TypeSpecialControl = "special_control"
)

// Prescription is one issued prescription with its medication line items.
// PatientName and PatientCPF are filled on list reads from the joined
// patient row.
type Prescription struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patientId"`
	DoctorID     uuid.UUID `json:"-"`
	Type         string    `json:"type"`
	Instructions string    `json:"instructions"`
	PDFURL       string    `json:"pdfUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Medications []*Medication `json:"medications,omitempty"`
	PatientName string        `json:"patientName,omitempty"`
	PatientCPF  string        `json:"patientCpf,omitempty"`
}

// Medication is one line item. Position preserves insertion order.
type Medication struct {
	ID             uuid.UUID `json:"id"`
	PrescriptionID uuid.UUID `json:"-"`
	Name           string    `json:"name"`
	Dosage         string    `json:"dosage"`
	Quantity       string    `json:"quantity"`
	Instructions   *string   `json:"instructions,omitempty"`
	Position       int       `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MedicationInput is one line item as submitted by the client.
type MedicationInput struct {
	Name         string  `json:"name"`
	Dosage       string  `json:"dosage"`
	Quantity     string  `json:"quantity"`
	Instructions *string `json:"instructions"`
}

// CreateRequest creates a prescription for an existing patient or registers
// a new one inline.
type CreateRequest struct {
	PatientID    *uuid.UUID             `json:"patientId"`
	NewPatient   *patient.CreateRequest `json:"newPatient"`
	Type         string                 `json:"type"`
	Instructions string                 `json:"instructions"`
	Medications  []MedicationInput      `json:"medications"`
}

// UpdateRequest replaces the prescription's type, instructions and the whole
// medication set.
type UpdateRequest struct {
	Type         string            `json:"type"`
	Instructions string            `json:"instructions"`
	Medications  []MedicationInput `json:"medications"`
}

// CreateResponse is returned by create and the PDF endpoint.
type CreateResponse struct {
	ID        uuid.UUID `json:"id"`
	PDFBase64 string    `json:"pdfBase64"`
	Message   string    `json:"message,omitempty"`
}
