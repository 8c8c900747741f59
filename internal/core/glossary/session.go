package glossary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chnbi/termbridge/internal/core/model"
)

// Import cycle states. "idle" is the absence of a session.
type SessionState string

const (
	StateAwaitingResolution SessionState = "awaiting_resolution"
	StateApplying           SessionState = "applying"
)

// ImportSession holds the detected partition of one import attempt while the
// user reviews the duplicate set. It lives in memory only and is discarded
// once resolved or abandoned.
type ImportSession struct {
	ID         uuid.UUID              `json:"id"`
	State      SessionState           `json:"state"`
	Duplicates []model.DuplicateMatch `json:"duplicates"`
	Uniques    []model.CandidateTerm  `json:"uniques"`
	CreatedAt  time.Time              `json:"created_at"`
}

// SessionRegistry drives the import cycle:
//
//	idle -> detecting -> awaiting_resolution -> applying -> idle
//
// When detection finds no duplicates the awaiting step is skipped and the
// uniques are applied immediately. Abandoning a session drops the whole
// duplicate set as all-ignored and still inserts the uniques.
type SessionRegistry struct {
	engine   *Engine
	mu       sync.Mutex
	sessions map[uuid.UUID]*ImportSession
}

func NewSessionRegistry(engine *Engine) *SessionRegistry {
	return &SessionRegistry{
		engine:   engine,
		sessions: make(map[uuid.UUID]*ImportSession),
	}
}

// Start runs detection over the candidates. If duplicates exist the session
// parks in awaiting_resolution and is returned with a nil summary; otherwise
// the uniques are applied at once and the summary is returned with a nil
// session.
func (r *SessionRegistry) Start(ctx context.Context, candidates []model.CandidateTerm, existing []model.Term) (*ImportSession, *model.ResolutionSummary, error) {
	duplicates, uniques := DetectDuplicates(candidates, existing)

	if len(duplicates) == 0 {
		summary, err := r.engine.Resolve(ctx, nil, &model.ResolutionRequest{Action: model.ActionIgnore}, uniques)
		if err != nil {
			return nil, nil, err
		}
		return nil, summary, nil
	}

	session := &ImportSession{
		ID:         uuid.New(),
		State:      StateAwaitingResolution,
		Duplicates: duplicates,
		Uniques:    uniques,
		CreatedAt:  time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return session, nil, nil
}

func (r *SessionRegistry) Get(id uuid.UUID) (*ImportSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	return session, ok
}

// take transitions the session to applying and removes it from the registry
// so a second resolve or abandon on the same id fails instead of re-running.
func (r *SessionRegistry) take(id uuid.UUID) (*ImportSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("import session %s not found", id)
	}
	if session.State != StateAwaitingResolution {
		return nil, fmt.Errorf("import session %s is %s, not awaiting resolution", id, session.State)
	}
	session.State = StateApplying
	delete(r.sessions, id)
	return session, nil
}

// Resolve applies the user's decision to the parked session and ends it.
// A malformed request is rejected before the session is consumed, so the
// user can correct it and resolve again.
func (r *SessionRegistry) Resolve(ctx context.Context, id uuid.UUID, req *model.ResolutionRequest) (*model.ResolutionSummary, error) {
	if req == nil {
		return nil, fmt.Errorf("nil resolution request")
	}
	if req.Action != model.ActionOverride && req.Action != model.ActionIgnore {
		return nil, fmt.Errorf("unknown resolution action %q", req.Action)
	}
	session, err := r.take(id)
	if err != nil {
		return nil, err
	}
	return r.engine.Resolve(ctx, session.Duplicates, req, session.Uniques)
}

// Abandon ends the session without a user decision: every duplicate is
// treated as ignored and only the uniques are inserted.
func (r *SessionRegistry) Abandon(ctx context.Context, id uuid.UUID) (*model.ResolutionSummary, error) {
	session, err := r.take(id)
	if err != nil {
		return nil, err
	}
	selected := make([]uuid.UUID, 0, len(session.Duplicates))
	for _, dup := range session.Duplicates {
		selected = append(selected, dup.Existing.ID)
	}
	req := &model.ResolutionRequest{Action: model.ActionIgnore, SelectedExistingIDs: selected}
	return r.engine.Resolve(ctx, session.Duplicates, req, session.Uniques)
}
