package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
)

type RowRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRowRepo(db *gorm.DB, baseLog *logger.Logger) *RowRepo {
	return &RowRepo{db: db, log: baseLog.With("repo", "RowRepo")}
}

func (r *RowRepo) ListByPage(ctx context.Context, pageID uuid.UUID) ([]model.Row, error) {
	var rows []model.Row
	if err := r.db.WithContext(ctx).Where("page_id = ?", pageID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, wrap("list rows", err)
	}
	return rows, nil
}

func (r *RowRepo) Get(ctx context.Context, id uuid.UUID) (*model.Row, error) {
	var row model.Row
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, wrap("get row", err)
	}
	return &row, nil
}

func (r *RowRepo) Create(ctx context.Context, row *model.Row) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Status == "" {
		row.Status = model.RowStatusPending
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return wrap("create row", err)
	}
	return nil
}

func (r *RowRepo) CreateBatch(ctx context.Context, rows []*model.Row) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.Status == "" {
			row.Status = model.RowStatusPending
		}
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return wrap("create rows", err)
	}
	return nil
}

func (r *RowRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Row, error) {
	res := r.db.WithContext(ctx).Model(&model.Row{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, wrap("update row", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &Error{Kind: KindNotFound, Op: "update row", Err: gorm.ErrRecordNotFound}
	}
	return r.Get(ctx, id)
}

func (r *RowRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Row, error) {
	if !model.ValidRowStatus(status) {
		return nil, &Error{Kind: KindInvalid, Op: "update row status", Err: fmt.Errorf("unknown status %q", status)}
	}
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *RowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Row{}, "id = ?", id)
	if res.Error != nil {
		return wrap("delete row", res.Error)
	}
	if res.RowsAffected == 0 {
		return &Error{Kind: KindNotFound, Op: "delete row", Err: gorm.ErrRecordNotFound}
	}
	return nil
}

// StatusCounts groups the page's rows by workflow state.
func (r *RowRepo) StatusCounts(ctx context.Context, pageID uuid.UUID) ([]model.StatusCount, error) {
	var counts []model.StatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Row{}).
		Select("status, COUNT(*) AS count").
		Where("page_id = ?", pageID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, wrap("row status counts", err)
	}
	return counts, nil
}
