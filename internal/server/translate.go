package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chnbi/termbridge/internal/core/model"
	"github.com/chnbi/termbridge/internal/core/translate"
)

type translateRequest struct {
	Text        string     `json:"text" binding:"required"`
	SourceLang  string     `json:"source_lang"`
	TargetLangA string     `json:"target_lang_a"`
	TargetLangB string     `json:"target_lang_b"`
	TemplateID  *uuid.UUID `json:"template_id"`
	UseGlossary *bool      `json:"use_glossary"`
}

// buildTranslateRequest resolves the prompt template and the approved
// glossary for one translation call.
func (s *Server) buildTranslateRequest(ctx context.Context, req translateRequest) (translate.Request, error) {
	out := translate.Request{
		Text:        req.Text,
		SourceLang:  req.SourceLang,
		TargetLangA: req.TargetLangA,
		TargetLangB: req.TargetLangB,
	}

	if req.TemplateID != nil {
		template, err := s.templates.Get(ctx, *req.TemplateID)
		if err != nil {
			return out, err
		}
		out.TemplateBody = template.Body
	} else if template, err := s.templates.GetDefault(ctx); err == nil {
		out.TemplateBody = template.Body
	}

	if req.UseGlossary == nil || *req.UseGlossary {
		terms, err := s.terms.ListByStatus(ctx, model.TermStatusApproved)
		if err != nil {
			return out, err
		}
		out.Glossary = terms
	}
	return out, nil
}

func (s *Server) Translate(c *gin.Context) {
	if s.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	treq, err := s.buildTranslateRequest(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err, "failed to prepare translation")
		return
	}
	result, err := s.translator.Translate(c.Request.Context(), treq)
	if err != nil {
		s.log.Error("translation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type translateBatchRequest struct {
	RowIDs      []uuid.UUID `json:"row_ids" binding:"required,min=1"`
	SourceLang  string      `json:"source_lang"`
	TargetLangA string      `json:"target_lang_a"`
	TargetLangB string      `json:"target_lang_b"`
	TemplateID  *uuid.UUID  `json:"template_id"`
}

type translateBatchItem struct {
	RowID       uuid.UUID                `json:"row_id"`
	Translation *model.TranslationResult `json:"translation,omitempty"`
	Err         string                   `json:"error,omitempty"`
}

// TranslateBatch translates the referenced rows concurrently and writes the
// successful translations back, marking those rows translated. Failures are
// reported per row; one bad row never blocks the rest.
func (s *Server) TranslateBatch(c *gin.Context) {
	if s.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}
	var req translateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ctx := c.Request.Context()

	base, err := s.buildTranslateRequest(ctx, translateRequest{
		Text:        "-", // replaced per row
		SourceLang:  req.SourceLang,
		TargetLangA: req.TargetLangA,
		TargetLangB: req.TargetLangB,
		TemplateID:  req.TemplateID,
	})
	if err != nil {
		s.fail(c, err, "failed to prepare translation")
		return
	}

	items := make([]translateBatchItem, 0, len(req.RowIDs))
	reqs := make([]translate.Request, 0, len(req.RowIDs))
	rowIDs := make([]uuid.UUID, 0, len(req.RowIDs))
	for _, rowID := range req.RowIDs {
		row, err := s.rows.Get(ctx, rowID)
		if err != nil {
			items = append(items, translateBatchItem{RowID: rowID, Err: "row not found"})
			continue
		}
		treq := base
		treq.Text = row.SourceText
		reqs = append(reqs, treq)
		rowIDs = append(rowIDs, rowID)
	}

	results := s.translator.TranslateBatch(ctx, reqs, s.cfg.Translate.BatchWorkers)
	for _, result := range results {
		item := translateBatchItem{RowID: rowIDs[result.Index], Translation: result.Translation, Err: result.Err}
		if result.Err == "" && result.Translation != nil {
			_, err := s.rows.Update(ctx, item.RowID, map[string]interface{}{
				"translated_a": result.Translation.TargetA,
				"translated_b": result.Translation.TargetB,
				"status":       model.RowStatusTranslated,
			})
			if err != nil {
				item.Err = "translated but failed to save"
				s.log.Error("failed to save translation", "row_id", item.RowID, "error", err)
			}
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
