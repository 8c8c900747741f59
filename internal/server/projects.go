package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chnbi/termbridge/internal/core/model"
)

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SourceLang  string `json:"source_lang"`
	TargetLangA string `json:"target_lang_a"`
	TargetLangB string `json:"target_lang_b"`
}

func (s *Server) ListProjects(c *gin.Context) {
	projects, err := s.projects.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "failed to list projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		SourceLang:  req.SourceLang,
		TargetLangA: req.TargetLangA,
		TargetLangB: req.TargetLangB,
	}
	if err := s.projects.Create(c.Request.Context(), project); err != nil {
		s.fail(c, err, "failed to create project")
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := s.projects.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "project not found")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	fields := pickFields(req, "name", "description", "source_lang", "target_lang_a", "target_lang_b")
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields supplied"})
		return
	}
	project, err := s.projects.Update(c.Request.Context(), id, fields)
	if err != nil {
		s.fail(c, err, "failed to update project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.projects.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err, "failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ProjectStats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	counts, err := s.projects.StatusCounts(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "failed to aggregate project stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// pickFields keeps only known JSON keys so clients cannot update arbitrary
// columns.
func pickFields(req map[string]interface{}, allowed ...string) map[string]interface{} {
	fields := make(map[string]interface{})
	for _, key := range allowed {
		if v, ok := req[key]; ok {
			fields[key] = v
		}
	}
	return fields
}
