package medlibrary

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a medication the doctor prescribes often, kept for autocomplete.
type Entry struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"-"`
	Name                string    `json:"name"`
	DefaultDosage       *string   `json:"defaultDosage,omitempty"`
	DefaultInstructions *string   `json:"defaultInstructions,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// EntryRequest is the payload for creating or updating an entry.
type EntryRequest struct {
	Name                string  `json:"name"`
	DefaultDosage       *string `json:"defaultDosage"`
	DefaultInstructions *string `json:"defaultInstructions"`
}
