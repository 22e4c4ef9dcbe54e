package prescription

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/receita/receita/internal/domain/patient"
	"github.com/receita/receita/internal/domain/user"
	"github.com/receita/receita/internal/render"
)

// PDFRenderer produces the final document for a prescription.
type PDFRenderer interface {
	Render(ctx context.Context, in render.Input) (string, error)
}

type Service struct {
	repo     Repository
	patients patient.Repository
	users    user.Repository
	renderer PDFRenderer
	logger   zerolog.Logger
}

func NewService(repo Repository, patients patient.Repository, users user.Repository,
	renderer PDFRenderer, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		users:    users,
		renderer: renderer,
		logger:   logger,
	}
}

func validateType(typ string) error {
	if typ != TypeSimple && typ != TypeSpecialControl {
		return fmt.Errorf("%w: type must be %q or %q", ErrValidation, TypeSimple, TypeSpecialControl)
	}
	return nil
}

func validateMedications(meds []MedicationInput) error {
	if len(meds) == 0 {
		return fmt.Errorf("%w: at least one medication is required", ErrValidation)
	}
	for i, m := range meds {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Dosage) == "" || strings.TrimSpace(m.Quantity) == "" {
			return fmt.Errorf("%w: medication %d needs name, dosage and quantity", ErrValidation, i+1)
		}
	}
	return nil
}

func buildMedications(meds []MedicationInput) []*Medication {
	out := make([]*Medication, len(meds))
	for i, m := range meds {
		out[i] = &Medication{
			Name:         strings.TrimSpace(m.Name),
			Dosage:       strings.TrimSpace(m.Dosage),
			Quantity:     strings.TrimSpace(m.Quantity),
			Instructions: m.Instructions,
		}
	}
	return out
}

// Create stores a new prescription and renders its document in the same
// request. The patient is either looked up or registered inline.
func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, req CreateRequest) (*CreateResponse, error) {
	if err := validateType(req.Type); err != nil {
		return nil, err
	}
	if err := validateMedications(req.Medications); err != nil {
		return nil, err
	}

	pat, err := s.resolvePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	p := &Prescription{
		PatientID:    pat.ID,
		DoctorID:     doctorID,
		Type:         req.Type,
		Instructions: req.Instructions,
		Medications:  buildMedications(req.Medications),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("store prescription: %w", err)
	}

	pdf, err := s.renderFor(ctx, p, pat)
	if err != nil {
		return nil, err
	}
	return &CreateResponse{ID: p.ID, PDFBase64: pdf, Message: "prescription created"}, nil
}

func (s *Service) resolvePatient(ctx context.Context, req CreateRequest) (*patient.Patient, error) {
	switch {
	case req.PatientID != nil:
		return s.patients.GetByID(ctx, *req.PatientID)
	case req.NewPatient != nil:
		np := *req.NewPatient
		if strings.TrimSpace(np.Name) == "" || strings.TrimSpace(np.CPF) == "" || strings.TrimSpace(np.Phone) == "" {
			return nil, fmt.Errorf("%w: new patient needs name, cpf and phone", ErrValidation)
		}
		p := &patient.Patient{
			Name:      strings.TrimSpace(np.Name),
			CPF:       strings.TrimSpace(np.CPF),
			Phone:     strings.TrimSpace(np.Phone),
			Email:     np.Email,
			Address:   np.Address,
			BirthDate: np.BirthDate,
		}
		if err := s.patients.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: patientId or newPatient is required", ErrValidation)
	}
}

// Get returns one of the caller's prescriptions with its medications.
func (s *Service) Get(ctx context.Context, doctorID, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, doctorID, id)
}

// List returns a page of the caller's prescriptions, newest first, plus the
// caller's total count.
func (s *Service) List(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	items, total, err := s.repo.ListByDoctor(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Prescription{}
	}
	return items, total, nil
}

// Update replaces the prescription's type, instructions and medication set.
func (s *Service) Update(ctx context.Context, doctorID, id uuid.UUID, req UpdateRequest) (*Prescription, error) {
	if err := validateType(req.Type); err != nil {
		return nil, err
	}
	if err := validateMedications(req.Medications); err != nil {
		return nil, err
	}

	p := &Prescription{
		ID:           id,
		DoctorID:     doctorID,
		Type:         req.Type,
		Instructions: req.Instructions,
		Medications:  buildMedications(req.Medications),
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RenderPDF re-renders the document from the current rows.
func (s *Service) RenderPDF(ctx context.Context, doctorID, id uuid.UUID) (*CreateResponse, error) {
	p, err := s.repo.GetByID(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}
	pat, err := s.patients.GetByID(ctx, p.PatientID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	pdf, err := s.renderFor(ctx, p, pat)
	if err != nil {
		return nil, err
	}
	return &CreateResponse{ID: p.ID, PDFBase64: pdf}, nil
}

func (s *Service) renderFor(ctx context.Context, p *Prescription, pat *patient.Patient) (string, error) {
	doc, err := s.users.GetByID(ctx, p.DoctorID)
	if err != nil {
		return "", fmt.Errorf("load doctor: %w", err)
	}

	in := render.Input{
		Type:         p.Type,
		Instructions: p.Instructions,
		Date:         p.CreatedAt,
		Patient: render.Patient{
			Name:    pat.Name,
			CPF:     pat.CPF,
			Phone:   pat.Phone,
			Address: deref(pat.Address),
		},
		Doctor: render.Doctor{Name: doc.Name, CRM: doc.CRM},
	}
	for _, m := range p.Medications {
		in.Medications = append(in.Medications, render.Medication{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Quantity:     m.Quantity,
			Instructions: deref(m.Instructions),
		})
	}

	pdf, err := s.renderer.Render(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Str("prescription_id", p.ID.String()).Msg("pdf generation failed")
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return pdf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
