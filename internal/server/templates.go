package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chnbi/termbridge/internal/core/model"
)

type templateRequest struct {
	Name      string `json:"name" binding:"required"`
	Body      string `json:"body" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

func (s *Server) ListTemplates(c *gin.Context) {
	templates, err := s.templates.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "failed to list templates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (s *Server) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	template := &model.PromptTemplate{Name: req.Name, Body: req.Body, IsDefault: req.IsDefault}
	if err := s.templates.Create(c.Request.Context(), template); err != nil {
		s.fail(c, err, "failed to create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (s *Server) UpdateTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	fields := pickFields(req, "name", "body", "is_default")
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields supplied"})
		return
	}
	template, err := s.templates.Update(c.Request.Context(), id, fields)
	if err != nil {
		s.fail(c, err, "failed to update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (s *Server) DeleteTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.templates.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err, "failed to delete template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
