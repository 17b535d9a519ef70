package fraud

import (
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/kiranalabs/kirana-voice-backend/pkg/errors"
)

// lastUpdatedLayout is second-resolution UTC without a zone suffix.
const lastUpdatedLayout = "2006-01-02T15:04:05"

// Service exposes the case verification workflow.
type Service interface {
	LookupByUtterance(utterance string) (Case, error)
	Lookup(identifier string) (Case, error)
	Get(caseID string) (Case, error)
	Verify(c Case, spokenAnswer string) bool
	UpdateCase(caseID string, status Status, outcomeNote string) (Case, error)
}

type service struct {
	store Store
	now   func() time.Time

	// serializes read-mutate-rewrite sequences; the store rewrites the
	// whole collection, so interleaved updates would lose writes
	mu sync.Mutex
}

// NewService builds a fraud case service. The clock defaults to time.Now.
func NewService(store Store, now func() time.Time) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("fraud case store required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{store: store, now: now}, nil
}

// LookupByUtterance extracts an identifier from free speech and looks the
// case up by it.
func (s *service) LookupByUtterance(utterance string) (Case, error) {
	identifier := ExtractIdentifier(utterance)
	if identifier == "" {
		return Case{}, pkgerrors.New(pkgerrors.CodeNotFound, "no identifier found in utterance")
	}
	return s.Lookup(identifier)
}

// Lookup finds the first case whose username matches the identifier,
// case-insensitively. First match wins; the store does not enforce username
// uniqueness and the lookup does not depend on it.
func (s *service) Lookup(identifier string) (Case, error) {
	normalized := strings.ToLower(strings.TrimSpace(identifier))
	if normalized == "" {
		return Case{}, pkgerrors.New(pkgerrors.CodeNotFound, "empty identifier")
	}

	cases, err := s.store.ReadAll()
	if err != nil {
		return Case{}, err
	}
	for _, c := range cases {
		if strings.ToLower(strings.TrimSpace(c.Username)) == normalized {
			return c, nil
		}
	}
	return Case{}, pkgerrors.New(pkgerrors.CodeNotFound, "no case for identifier").
		WithDetails(map[string]any{"identifier": normalized})
}

// Get returns the case with the given id.
func (s *service) Get(caseID string) (Case, error) {
	cases, err := s.store.ReadAll()
	if err != nil {
		return Case{}, err
	}
	for _, c := range cases {
		if c.CaseID == caseID {
			return c, nil
		}
	}
	return Case{}, pkgerrors.New(pkgerrors.CodeNotFound, "no such case").
		WithDetails(map[string]any{"case_id": caseID})
}

// Verify compares the spoken answer to the stored security answer,
// case-insensitively and ignoring surrounding whitespace. A blank answer
// never verifies, even against a case whose stored answer is blank; a record
// with no usable answer must not be passable by silence.
func (s *service) Verify(c Case, spokenAnswer string) bool {
	given := strings.ToLower(strings.TrimSpace(spokenAnswer))
	expected := strings.ToLower(strings.TrimSpace(c.SecurityAnswer))
	return given != "" && given == expected
}

// UpdateCase transitions the case's status, records the outcome note and
// last-updated time, and rewrites the whole collection. Updates are
// serialized; concurrent callers see one rewrite at a time.
func (s *service) UpdateCase(caseID string, status Status, outcomeNote string) (Case, error) {
	if !status.Valid() {
		return Case{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown case status").
			WithDetails(map[string]any{"status": string(status)})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cases, err := s.store.ReadAll()
	if err != nil {
		return Case{}, err
	}

	found := -1
	for i := range cases {
		if cases[i].CaseID == caseID {
			found = i
			break
		}
	}
	if found < 0 {
		return Case{}, pkgerrors.New(pkgerrors.CodeNotFound, "no such case").
			WithDetails(map[string]any{"case_id": caseID})
	}

	cases[found].Status = status
	cases[found].OutcomeNote = outcomeNote
	cases[found].LastUpdated = s.now().UTC().Format(lastUpdatedLayout)

	if err := s.store.WriteAll(cases); err != nil {
		return Case{}, err
	}
	return cases[found], nil
}
