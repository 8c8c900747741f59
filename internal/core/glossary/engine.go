package glossary

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
	"github.com/chnbi/termbridge/internal/store"
)

// TermStore is the slice of the term store the engine needs. The concrete
// store.TermRepo satisfies it; tests supply a mock.
type TermStore interface {
	List(ctx context.Context) ([]model.Term, error)
	Insert(ctx context.Context, candidate model.CandidateTerm) (*model.Term, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Term, error)
}

// Engine applies a user-chosen bulk resolution to a detected duplicate set
// and inserts the unique remainder. It holds no state between calls.
type Engine struct {
	terms   TermStore
	log     *logger.Logger
	workers int
}

func NewEngine(terms TermStore, log *logger.Logger, workers int) *Engine {
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		terms:   terms,
		log:     log.With("component", "glossary-engine"),
		workers: workers,
	}
}

// overrideFields builds the partial update for an override: only non-empty
// candidate values replace the existing ones, so a sparse import row can
// never blank a populated field.
func overrideFields(c model.CandidateTerm) map[string]interface{} {
	fields := make(map[string]interface{})
	if strings.TrimSpace(c.Source) != "" {
		fields["source"] = c.Source
	}
	if strings.TrimSpace(c.TargetA) != "" {
		fields["target_a"] = c.TargetA
	}
	if strings.TrimSpace(c.TargetB) != "" {
		fields["target_b"] = c.TargetB
	}
	if strings.TrimSpace(c.Category) != "" {
		fields["category"] = c.Category
	}
	if strings.TrimSpace(c.Remark) != "" {
		fields["remark"] = c.Remark
	}
	return fields
}

// Resolve executes one resolution batch. Selected duplicates get the
// requested action; unselected duplicates are skipped and appear in no
// counter. Uniques are always inserted. Store calls fan out concurrently
// and every failure is collected per item rather than aborting the batch,
// so the returned summary always reflects every attempted item.
//
// Only a nil or malformed request errors synchronously; everything else is
// reported through the summary.
func (e *Engine) Resolve(ctx context.Context, duplicates []model.DuplicateMatch, req *model.ResolutionRequest, uniques []model.CandidateTerm) (*model.ResolutionSummary, error) {
	if req == nil {
		return nil, fmt.Errorf("nil resolution request")
	}
	if req.Action != model.ActionOverride && req.Action != model.ActionIgnore {
		return nil, fmt.Errorf("unknown resolution action %q", req.Action)
	}

	summary := &model.ResolutionSummary{}
	var mu sync.Mutex

	// Index the duplicate list by existing id. Detection guarantees each id
	// appears once, but a caller re-entering with duplicated ids must not
	// cause two racing updates on the same term, so repeats are rejected.
	byExisting := make(map[uuid.UUID]model.DuplicateMatch, len(duplicates))
	for _, dup := range duplicates {
		if _, seen := byExisting[dup.Existing.ID]; seen {
			summary.Invalid++
			continue
		}
		byExisting[dup.Existing.ID] = dup
	}

	// Selected ids that reference nothing in the duplicate list are
	// malformed input: excluded and counted, never coerced.
	selected := make([]model.DuplicateMatch, 0, len(req.SelectedExistingIDs))
	seenSelected := make(map[uuid.UUID]bool, len(req.SelectedExistingIDs))
	for _, id := range req.SelectedExistingIDs {
		if seenSelected[id] {
			summary.Invalid++
			continue
		}
		seenSelected[id] = true
		dup, ok := byExisting[id]
		if !ok {
			summary.Invalid++
			continue
		}
		selected = append(selected, dup)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	if req.Action == model.ActionIgnore {
		// Explicit ignores touch nothing; they only count.
		summary.Ignored = len(selected)
	} else {
		for _, dup := range selected {
			dup := dup
			g.Go(func() error {
				fields := overrideFields(dup.Candidate)
				_, err := e.terms.Update(gctx, dup.Existing.ID, fields)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					summary.Failures = append(summary.Failures, model.ItemFailure{
						ID:     dup.Existing.ID.String(),
						Source: dup.Candidate.Source,
						Op:     "override",
						Kind:   string(store.KindOf(err)),
						Reason: err.Error(),
					})
					return nil
				}
				summary.Overridden++
				return nil
			})
		}
	}

	// Uniques are an independent track: they are inserted no matter what
	// happened on the duplicate side.
	for _, candidate := range uniques {
		candidate := candidate
		if strings.TrimSpace(candidate.Source) == "" {
			summary.Invalid++
			continue
		}
		g.Go(func() error {
			_, err := e.terms.Insert(gctx, candidate)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failures = append(summary.Failures, model.ItemFailure{
					Source: candidate.Source,
					Op:     "insert",
					Kind:   string(store.KindOf(err)),
					Reason: err.Error(),
				})
				return nil
			}
			summary.Inserted++
			return nil
		})
	}

	// Workers never return errors, so Wait only orders the aggregation.
	_ = g.Wait()

	if len(summary.Failures) > 0 {
		e.log.Warn("resolution batch finished with failures",
			"overridden", summary.Overridden,
			"inserted", summary.Inserted,
			"failed", len(summary.Failures))
	}
	return summary, nil
}
