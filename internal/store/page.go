package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
)

type PageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) *PageRepo {
	return &PageRepo{db: db, log: baseLog.With("repo", "PageRepo")}
}

func (r *PageRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Page, error) {
	var pages []model.Page
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("order_index").Find(&pages).Error; err != nil {
		return nil, wrap("list pages", err)
	}
	return pages, nil
}

func (r *PageRepo) Get(ctx context.Context, id uuid.UUID) (*model.Page, error) {
	var page model.Page
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, wrap("get page", err)
	}
	return &page, nil
}

func (r *PageRepo) Create(ctx context.Context, page *model.Page) error {
	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return wrap("create page", err)
	}
	return nil
}

func (r *PageRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Page, error) {
	res := r.db.WithContext(ctx).Model(&model.Page{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, wrap("update page", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &Error{Kind: KindNotFound, Op: "update page", Err: gorm.ErrRecordNotFound}
	}
	return r.Get(ctx, id)
}

func (r *PageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Row{}, "page_id = ?", id).Error; err != nil {
			return wrap("delete page", err)
		}
		res := tx.Delete(&model.Page{}, "id = ?", id)
		if res.Error != nil {
			return wrap("delete page", res.Error)
		}
		if res.RowsAffected == 0 {
			return &Error{Kind: KindNotFound, Op: "delete page", Err: gorm.ErrRecordNotFound}
		}
		return nil
	})
}
