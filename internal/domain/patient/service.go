package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and registers a patient.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.CPF = strings.TrimSpace(req.CPF)
	req.Phone = strings.TrimSpace(req.Phone)

	var issues []string
	if req.Name == "" {
		issues = append(issues, "name is required")
	}
	if req.CPF == "" {
		issues = append(issues, "cpf is required")
	}
	if req.Phone == "" {
		issues = append(issues, "phone is required")
	}
	if len(issues) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(issues, "; "))
	}

	p := &Patient{
		Name:      req.Name,
		CPF:       req.CPF,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		BirthDate: req.BirthDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the patient by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns patients whose name or CPF contains the query, plus the
// total match count. An empty query pages through all patients alphabetically.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.repo.Search(ctx, strings.TrimSpace(query), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Patient{}
	}
	return items, total, nil
}
