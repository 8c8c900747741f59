package glossary

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/chnbi/termbridge/internal/core/model"
)

// MockTermStore is an in-memory TermStore for tests. Errors can be injected
// per candidate source (inserts) or per existing id (updates).
type MockTermStore struct {
	mu           sync.Mutex
	Terms        []model.Term
	InsertErrFor map[string]error
	UpdateErrFor map[uuid.UUID]error

	InsertedSources []string
	UpdatedFields   map[uuid.UUID]map[string]interface{}
}

func NewMockTermStore(existing ...model.Term) *MockTermStore {
	return &MockTermStore{
		Terms:           append([]model.Term{}, existing...),
		InsertErrFor:    map[string]error{},
		UpdateErrFor:    map[uuid.UUID]error{},
		UpdatedFields:   map[uuid.UUID]map[string]interface{}{},
		InsertedSources: []string{},
	}
}

func (m *MockTermStore) List(ctx context.Context) ([]model.Term, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Term, len(m.Terms))
	copy(out, m.Terms)
	return out, nil
}

func (m *MockTermStore) Insert(ctx context.Context, candidate model.CandidateTerm) (*model.Term, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.InsertErrFor[candidate.Source]; ok {
		return nil, err
	}
	term := model.Term{
		ID:       uuid.New(),
		Source:   candidate.Source,
		TargetA:  candidate.TargetA,
		TargetB:  candidate.TargetB,
		Category: candidate.Category,
		Status:   model.TermStatusDraft,
		Remark:   candidate.Remark,
	}
	m.Terms = append(m.Terms, term)
	m.InsertedSources = append(m.InsertedSources, candidate.Source)
	return &term, nil
}

func (m *MockTermStore) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Term, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.UpdateErrFor[id]; ok {
		return nil, err
	}
	for i := range m.Terms {
		if m.Terms[i].ID != id {
			continue
		}
		if v, ok := fields["source"].(string); ok {
			m.Terms[i].Source = v
		}
		if v, ok := fields["target_a"].(string); ok {
			m.Terms[i].TargetA = v
		}
		if v, ok := fields["target_b"].(string); ok {
			m.Terms[i].TargetB = v
		}
		if v, ok := fields["category"].(string); ok {
			m.Terms[i].Category = v
		}
		if v, ok := fields["remark"].(string); ok {
			m.Terms[i].Remark = v
		}
		m.UpdatedFields[id] = fields
		term := m.Terms[i]
		return &term, nil
	}
	return nil, &notFoundError{}
}

// Find returns the stored term with the given id.
func (m *MockTermStore) Find(id uuid.UUID) (model.Term, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, term := range m.Terms {
		if term.ID == id {
			return term, true
		}
	}
	return model.Term{}, false
}

type notFoundError struct{}

func (*notFoundError) Error() string { return "term not found" }
