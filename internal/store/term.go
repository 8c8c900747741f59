package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
)

// Columns accepted by partial term updates. Everything else, id included,
// is immutable through this path.
var termUpdatableColumns = map[string]bool{
	"source":   true,
	"target_a": true,
	"target_b": true,
	"category": true,
	"status":   true,
	"remark":   true,
}

type TermRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTermRepo(db *gorm.DB, baseLog *logger.Logger) *TermRepo {
	return &TermRepo{db: db, log: baseLog.With("repo", "TermRepo")}
}

func (r *TermRepo) List(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	if err := r.db.WithContext(ctx).Order("created_at").Find(&terms).Error; err != nil {
		return nil, wrap("list terms", err)
	}
	return terms, nil
}

func (r *TermRepo) ListByStatus(ctx context.Context, status string) ([]model.Term, error) {
	var terms []model.Term
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at").Find(&terms).Error; err != nil {
		return nil, wrap("list terms by status", err)
	}
	return terms, nil
}

func (r *TermRepo) Get(ctx context.Context, id uuid.UUID) (*model.Term, error) {
	var term model.Term
	if err := r.db.WithContext(ctx).First(&term, "id = ?", id).Error; err != nil {
		return nil, wrap("get term", err)
	}
	return &term, nil
}

// Insert persists a candidate as a new term. The store assigns the id,
// defaults the status to draft, and stamps timestamps.
func (r *TermRepo) Insert(ctx context.Context, candidate model.CandidateTerm) (*model.Term, error) {
	if strings.TrimSpace(candidate.Source) == "" {
		return nil, &Error{Kind: KindInvalid, Op: "insert term", Err: fmt.Errorf("empty source")}
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
	if err := r.db.WithContext(ctx).Create(&term).Error; err != nil {
		return nil, wrap("insert term", err)
	}
	return &term, nil
}

// Update applies a partial update: only the supplied columns change.
func (r *TermRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Term, error) {
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}
	for col := range fields {
		if !termUpdatableColumns[col] {
			return nil, &Error{Kind: KindInvalid, Op: "update term", Err: fmt.Errorf("column %q is not updatable", col)}
		}
	}
	res := r.db.WithContext(ctx).Model(&model.Term{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, wrap("update term", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &Error{Kind: KindNotFound, Op: "update term", Err: gorm.ErrRecordNotFound}
	}
	return r.Get(ctx, id)
}

// UpdateStatus moves a term through the approval workflow.
func (r *TermRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Term, error) {
	if !model.ValidTermStatus(status) {
		return nil, &Error{Kind: KindInvalid, Op: "update term status", Err: fmt.Errorf("unknown status %q", status)}
	}
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *TermRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Term{}, "id = ?", id)
	if res.Error != nil {
		return wrap("delete term", res.Error)
	}
	if res.RowsAffected == 0 {
		return &Error{Kind: KindNotFound, Op: "delete term", Err: gorm.ErrRecordNotFound}
	}
	return nil
}
