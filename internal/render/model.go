// Package render turns prescription data into PDF documents. Two layouts
// exist: a programmatically drawn sheet for ordinary prescriptions and an
// HTML template printed through a headless browser for special-control ones,
// which carry the two-copy regulatory layout.
package render

import (
	"errors"
	"time"
)

const (
	// TypeSimple selects the drawn portrait layout.
	TypeSimple = "simple"
	// TypeSpecialControl selects the templated landscape layout.
	TypeSpecialControl = "special_control"
)

// ErrNoMedications is returned when a render is requested without line items.
var ErrNoMedications = errors.New("prescription has no medications")

// Doctor identifies the prescriber on the document.
type Doctor struct {
	Name string
	CRM  string
}

// Patient identifies the person the prescription is for.
type Patient struct {
	Name    string
	CPF     string
	Phone   string
	Address string
}

// Medication is one line item.
type Medication struct {
	Name         string
	Dosage       string
	Quantity     string
	Instructions string
}

// Input is everything a render needs, assembled by the prescription service.
type Input struct {
	Type         string
	Instructions string
	Date         time.Time
	Patient      Patient
	Doctor       Doctor
	Medications  []Medication
}
