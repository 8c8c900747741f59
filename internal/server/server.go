package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chnbi/termbridge/internal/config"
	"github.com/chnbi/termbridge/internal/core/glossary"
	"github.com/chnbi/termbridge/internal/core/translate"
	"github.com/chnbi/termbridge/internal/llm"
	"github.com/chnbi/termbridge/internal/logger"
	"github.com/chnbi/termbridge/internal/store"
)

type Server struct {
	cfg *config.Config
	log *logger.Logger

	terms     *store.TermRepo
	projects  *store.ProjectRepo
	pages     *store.PageRepo
	rows      *store.RowRepo
	templates *store.TemplateRepo

	engine   *glossary.Engine
	sessions *glossary.SessionRegistry

	// translator is nil when no LLM provider is configured; the translate
	// endpoints answer 503 in that case.
	translator *translate.Translator
}

func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	st, err := store.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := st.AutoMigrate(); err != nil {
		return nil, err
	}

	terms := st.Terms()
	engine := glossary.NewEngine(terms, log, cfg.Glossary.ResolveWorkers)

	srv := &Server{
		cfg:       cfg,
		log:       log.With("component", "server"),
		terms:     terms,
		projects:  st.Projects(),
		pages:     st.Pages(),
		rows:      st.Rows(),
		templates: st.Templates(),
		engine:    engine,
		sessions:  glossary.NewSessionRegistry(engine),
	}

	if cfg.LLM.Provider != "" {
		client, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			return nil, err
		}
		srv.translator = translate.NewTranslator(client, log)
	} else {
		log.Warn("no LLM provider configured, translation endpoints disabled")
	}

	return srv, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.Server.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.Server.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.GET("/projects", s.ListProjects)
	api.POST("/projects", s.CreateProject)
	api.GET("/projects/:id", s.GetProject)
	api.PUT("/projects/:id", s.UpdateProject)
	api.DELETE("/projects/:id", s.DeleteProject)
	api.GET("/projects/:id/stats", s.ProjectStats)
	api.GET("/projects/:id/pages", s.ListPages)
	api.POST("/projects/:id/pages", s.CreatePage)

	api.GET("/pages/:id", s.GetPage)
	api.PUT("/pages/:id", s.UpdatePage)
	api.DELETE("/pages/:id", s.DeletePage)
	api.GET("/pages/:id/stats", s.PageStats)
	api.GET("/pages/:id/rows", s.ListRows)
	api.POST("/pages/:id/rows", s.CreateRows)
	api.GET("/pages/:id/export", s.ExportPageRows)

	api.PUT("/rows/:id", s.UpdateRow)
	api.PUT("/rows/:id/status", s.UpdateRowStatus)
	api.DELETE("/rows/:id", s.DeleteRow)

	api.GET("/terms", s.ListTerms)
	api.POST("/terms", s.CreateTerm)
	api.PUT("/terms/:id", s.UpdateTerm)
	api.PUT("/terms/:id/status", s.UpdateTermStatus)
	api.DELETE("/terms/:id", s.DeleteTerm)

	api.POST("/glossary/import", s.ImportGlossary)
	api.POST("/glossary/import/:sessionID/resolve", s.ResolveImport)
	api.DELETE("/glossary/import/:sessionID", s.AbandonImport)
	api.GET("/glossary/export", s.ExportGlossary)

	api.GET("/templates", s.ListTemplates)
	api.POST("/templates", s.CreateTemplate)
	api.PUT("/templates/:id", s.UpdateTemplate)
	api.DELETE("/templates/:id", s.DeleteTemplate)

	api.POST("/translate", s.Translate)
	api.POST("/translate/batch", s.TranslateBatch)

	return r
}

// storeStatus maps a store error classification to an HTTP status.
func storeStatus(err error) int {
	var se *store.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case store.KindNotFound:
			return http.StatusNotFound
		case store.KindConflict:
			return http.StatusConflict
		case store.KindInvalid:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error, msg string) {
	s.log.Error(msg, "error", err)
	c.JSON(storeStatus(err), gin.H{"error": msg})
}
