package medlibrary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// searchLimit caps autocomplete results.
	searchLimit = 20
	// minQueryLen is the shortest query the search endpoint answers. Shorter
	// queries return an empty list rather than the whole library.
	minQueryLen = 2
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an entry to the caller's library.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req EntryRequest) (*Entry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	taken, err := s.repo.ExistsByName(ctx, userID, name, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check entry name: %w", err)
	}
	if taken {
		return nil, ErrDuplicateName
	}

	e := &Entry{
		UserID:              userID,
		Name:                name,
		DefaultDosage:       req.DefaultDosage,
		DefaultInstructions: req.DefaultInstructions,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all of the caller's entries, alphabetical.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Entry{}
	}
	return items, nil
}

// Search returns the caller's entries whose name contains the query.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, query string) ([]*Entry, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return []*Entry{}, nil
	}
	items, err := s.repo.Search(ctx, userID, query, searchLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Entry{}
	}
	return items, nil
}

// Update renames or re-defaults an entry the caller owns.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req EntryRequest) (*Entry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	e, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByName(ctx, userID, name, id)
	if err != nil {
		return nil, fmt.Errorf("check entry name: %w", err)
	}
	if taken {
		return nil, ErrDuplicateName
	}

	e.Name = name
	e.DefaultDosage = req.DefaultDosage
	e.DefaultInstructions = req.DefaultInstructions
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an entry the caller owns.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
