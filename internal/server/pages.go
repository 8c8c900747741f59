package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/spreadsheet"
)

type pageRequest struct {
	Name       string `json:"name" binding:"required"`
	OrderIndex int    `json:"order_index"`
}

func (s *Server) ListPages(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	pages, err := s.pages.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		s.fail(c, err, "failed to list pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (s *Server) CreatePage(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	page := &model.Page{ProjectID: projectID, Name: req.Name, OrderIndex: req.OrderIndex}
	if err := s.pages.Create(c.Request.Context(), page); err != nil {
		s.fail(c, err, "failed to create page")
		return
	}
	c.JSON(http.StatusCreated, page)
}

func (s *Server) GetPage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page, err := s.pages.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "page not found")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) UpdatePage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	fields := pickFields(req, "name", "order_index")
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields supplied"})
		return
	}
	page, err := s.pages.Update(c.Request.Context(), id, fields)
	if err != nil {
		s.fail(c, err, "failed to update page")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) DeletePage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.pages.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err, "failed to delete page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) PageStats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	counts, err := s.rows.StatusCounts(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "failed to aggregate page stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ExportPageRows streams the page's rows as an XLSX workbook.
func (s *Server) ExportPageRows(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := s.rows.ListByPage(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "failed to list rows")
		return
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteRowsXLSX(&buf, rows); err != nil {
		s.fail(c, err, "failed to build workbook")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="rows.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
