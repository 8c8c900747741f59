package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
)

type TemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) *TemplateRepo {
	return &TemplateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *TemplateRepo) List(ctx context.Context) ([]model.PromptTemplate, error) {
	var templates []model.PromptTemplate
	if err := r.db.WithContext(ctx).Order("created_at").Find(&templates).Error; err != nil {
		return nil, wrap("list templates", err)
	}
	return templates, nil
}

func (r *TemplateRepo) Get(ctx context.Context, id uuid.UUID) (*model.PromptTemplate, error) {
	var template model.PromptTemplate
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		return nil, wrap("get template", err)
	}
	return &template, nil
}

// GetDefault returns the template flagged as default, or NOT_FOUND when none is.
func (r *TemplateRepo) GetDefault(ctx context.Context) (*model.PromptTemplate, error) {
	var template model.PromptTemplate
	if err := r.db.WithContext(ctx).First(&template, "is_default = ?", true).Error; err != nil {
		return nil, wrap("get default template", err)
	}
	return &template, nil
}

func (r *TemplateRepo) Create(ctx context.Context, template *model.PromptTemplate) error {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsDefault {
			if err := tx.Model(&model.PromptTemplate{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
				return wrap("create template", err)
			}
		}
		if err := tx.Create(template).Error; err != nil {
			return wrap("create template", err)
		}
		return nil
	})
}

func (r *TemplateRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.PromptTemplate, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isDefault, ok := fields["is_default"].(bool); ok && isDefault {
			if err := tx.Model(&model.PromptTemplate{}).Where("is_default = ? AND id <> ?", true, id).Update("is_default", false).Error; err != nil {
				return wrap("update template", err)
			}
		}
		res := tx.Model(&model.PromptTemplate{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return wrap("update template", res.Error)
		}
		if res.RowsAffected == 0 {
			return &Error{Kind: KindNotFound, Op: "update template", Err: gorm.ErrRecordNotFound}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *TemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.PromptTemplate{}, "id = ?", id)
	if res.Error != nil {
		return wrap("delete template", res.Error)
	}
	if res.RowsAffected == 0 {
		return &Error{Kind: KindNotFound, Op: "delete template", Err: gorm.ErrRecordNotFound}
	}
	return nil
}
