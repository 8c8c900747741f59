package server

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/spreadsheet"
)

func (s *Server) ListTerms(c *gin.Context) {
	var (
		terms []model.Term
		err   error
	)
	if status := c.Query("status"); status != "" {
		terms, err = s.terms.ListByStatus(c.Request.Context(), status)
	} else {
		terms, err = s.terms.List(c.Request.Context())
	}
	if err != nil {
		s.fail(c, err, "failed to list terms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"terms": terms})
}

func (s *Server) CreateTerm(c *gin.Context) {
	var req model.CandidateTerm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Category == "" {
		req.Category = s.cfg.Glossary.DefaultCategory
	}
	term, err := s.terms.Insert(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "failed to create term")
		return
	}
	c.JSON(http.StatusCreated, term)
}

func (s *Server) UpdateTerm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	fields := pickFields(req, "source", "target_a", "target_b", "category", "remark")
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields supplied"})
		return
	}
	term, err := s.terms.Update(c.Request.Context(), id, fields)
	if err != nil {
		s.fail(c, err, "failed to update term")
		return
	}
	c.JSON(http.StatusOK, term)
}

func (s *Server) UpdateTermStatus(c *gin.Context) {
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
	term, err := s.terms.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.fail(c, err, "failed to update term status")
		return
	}
	c.JSON(http.StatusOK, term)
}

func (s *Server) DeleteTerm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.terms.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err, "failed to delete term")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ImportGlossary takes an uploaded CSV or XLSX file, parses it into
// candidates, and runs duplicate detection. When nothing collides the
// uniques are inserted immediately; otherwise the response carries a
// session id plus the duplicate list for user review.
func (s *Server) ImportGlossary(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	var (
		candidates []model.CandidateTerm
		skipped    int
	)
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		candidates, skipped, err = spreadsheet.ReadTermsXLSX(file, s.cfg.Glossary.DefaultCategory)
	case ".csv", ".txt":
		candidates, skipped, err = spreadsheet.ReadTermsCSV(file, s.cfg.Glossary.DefaultCategory)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected .csv or .xlsx"})
		return
	}
	if err != nil {
		s.log.Error("failed to parse glossary upload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse file"})
		return
	}

	existing, err := s.terms.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "failed to load existing terms")
		return
	}

	session, summary, err := s.sessions.Start(c.Request.Context(), candidates, existing)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if session == nil {
		c.JSON(http.StatusOK, gin.H{"skipped": skipped, "summary": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"skipped":    skipped,
		"duplicates": session.Duplicates,
		"uniques":    len(session.Uniques),
	})
}

type resolveRequest struct {
	Action              model.ResolutionAction `json:"action" binding:"required"`
	SelectedExistingIDs []uuid.UUID            `json:"selected_existing_ids"`
}

func (s *Server) ResolveImport(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	summary, err := s.sessions.Resolve(c.Request.Context(), sessionID, &model.ResolutionRequest{
		Action:              req.Action,
		SelectedExistingIDs: req.SelectedExistingIDs,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// AbandonImport drops the parked duplicate set and inserts only the uniques.
func (s *Server) AbandonImport(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	summary, err := s.sessions.Abandon(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) ExportGlossary(c *gin.Context) {
	terms, err := s.terms.List(c.Request.Context())
	if err != nil {
		s.fail(c, err, "failed to list terms")
		return
	}

	var buf bytes.Buffer
	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		if err := spreadsheet.WriteTermsCSV(&buf, terms); err != nil {
			s.fail(c, err, "failed to build CSV")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="glossary.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		if err := spreadsheet.WriteTermsXLSX(&buf, terms); err != nil {
			s.fail(c, err, "failed to build workbook")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="glossary.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format, expected csv or xlsx"})
	}
}
