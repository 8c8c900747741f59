package translate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/chnbi/termbridge/internal/core/model"
)

// BatchItem is the per-request outcome of a batch translation. Err is a
// plain string so the payload serializes for the presentation layer.
type BatchItem struct {
	Index       int                      `json:"index"`
	Translation *model.TranslationResult `json:"translation,omitempty"`
	Err         string                   `json:"error,omitempty"`
}

// TranslateBatch fans the requests out over a bounded worker pool and
// returns one item per request in input order. A failed request never stops
// the others; callers inspect each item.
func (t *Translator) TranslateBatch(ctx context.Context, reqs []Request, workers int) []BatchItem {
	if workers <= 0 {
		workers = 4
	}
	items := make([]BatchItem, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			result, err := t.Translate(gctx, req)
			item := BatchItem{Index: i, Translation: result}
			if err != nil {
				item.Err = err.Error()
			}
			items[i] = item
			return nil
		})
	}

	_ = g.Wait()
	return items
}
