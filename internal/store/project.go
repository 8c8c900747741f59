package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
)

type ProjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) *ProjectRepo {
	return &ProjectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *ProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order("created_at").Find(&projects).Error; err != nil {
		return nil, wrap("list projects", err)
	}
	return projects, nil
}

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, wrap("get project", err)
	}
	return &project, nil
}

func (r *ProjectRepo) Create(ctx context.Context, project *model.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return wrap("create project", err)
	}
	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Project, error) {
	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, wrap("update project", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &Error{Kind: KindNotFound, Op: "update project", Err: gorm.ErrRecordNotFound}
	}
	return r.Get(ctx, id)
}

// Delete removes the project and everything under it.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pageIDs []uuid.UUID
		if err := tx.Model(&model.Page{}).Where("project_id = ?", id).Pluck("id", &pageIDs).Error; err != nil {
			return wrap("delete project", err)
		}
		if len(pageIDs) > 0 {
			if err := tx.Delete(&model.Row{}, "page_id IN ?", pageIDs).Error; err != nil {
				return wrap("delete project", err)
			}
		}
		if err := tx.Delete(&model.Page{}, "project_id = ?", id).Error; err != nil {
			return wrap("delete project", err)
		}
		res := tx.Delete(&model.Project{}, "id = ?", id)
		if res.Error != nil {
			return wrap("delete project", res.Error)
		}
		if res.RowsAffected == 0 {
			return &Error{Kind: KindNotFound, Op: "delete project", Err: gorm.ErrRecordNotFound}
		}
		return nil
	})
}

// StatusCounts aggregates row statuses across all pages of the project.
func (r *ProjectRepo) StatusCounts(ctx context.Context, id uuid.UUID) ([]model.StatusCount, error) {
	var counts []model.StatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Row{}).
		Select("rows.status AS status, COUNT(*) AS count").
		Joins("JOIN pages ON pages.id = rows.page_id").
		Where("pages.project_id = ?", id).
		Group("rows.status").
		Scan(&counts).Error
	if err != nil {
		return nil, wrap("project status counts", err)
	}
	return counts, nil
}
