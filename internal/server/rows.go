package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chnbi/termbridge/internal/core/model"
)

type rowRequest struct {
	SourceText  string `json:"source_text" binding:"required"`
	TranslatedA string `json:"translated_a"`
	TranslatedB string `json:"translated_b"`
	Remark      string `json:"remark"`
}

func (s *Server) ListRows(c *gin.Context) {
	pageID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := s.rows.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		s.fail(c, err, "failed to list rows")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// CreateRows accepts one row or a batch in a single call.
func (s *Server) CreateRows(c *gin.Context) {
	pageID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Rows []rowRequest `json:"rows" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rows := make([]*model.Row, 0, len(req.Rows))
	for _, item := range req.Rows {
		rows = append(rows, &model.Row{
			PageID:      pageID,
			SourceText:  item.SourceText,
			TranslatedA: item.TranslatedA,
			TranslatedB: item.TranslatedB,
			Remark:      item.Remark,
		})
	}
	if err := s.rows.CreateBatch(c.Request.Context(), rows); err != nil {
		s.fail(c, err, "failed to create rows")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rows": rows})
}

func (s *Server) UpdateRow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	fields := pickFields(req, "source_text", "translated_a", "translated_b", "remark")
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields supplied"})
		return
	}
	row, err := s.rows.Update(c.Request.Context(), id, fields)
	if err != nil {
		s.fail(c, err, "failed to update row")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) UpdateRowStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	row, err := s.rows.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.fail(c, err, "failed to update row status")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) DeleteRow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.rows.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err, "failed to delete row")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
