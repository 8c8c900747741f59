package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chnbi/termbridge/internal/config"
	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/logger"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func Open(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	storeLog := log.With("component", "store")

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	storeLog.Info("connected", "driver", cfg.Driver)
	return &Store{db: db, log: storeLog}, nil
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.Project{},
		&model.Page{},
		&model.Row{},
		&model.Term{},
		&model.PromptTemplate{},
	)
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Terms() *TermRepo         { return NewTermRepo(s.db, s.log) }
func (s *Store) Projects() *ProjectRepo   { return NewProjectRepo(s.db, s.log) }
func (s *Store) Pages() *PageRepo         { return NewPageRepo(s.db, s.log) }
func (s *Store) Rows() *RowRepo           { return NewRowRepo(s.db, s.log) }
func (s *Store) Templates() *TemplateRepo { return NewTemplateRepo(s.db, s.log) }
