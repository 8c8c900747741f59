package model

import (
	"time"

	"github.com/google/uuid"
)

// Row workflow states.
const (
	RowStatusPending    = "pending"
	RowStatusTranslated = "translated"
	RowStatusReviewed   = "reviewed"
	RowStatusApproved   = "approved"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	SourceLang  string    `json:"source_lang"`
	TargetLangA string    `json:"target_lang_a"`
	TargetLangB string    `json:"target_lang_b"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Page struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;index;not null" json:"project_id"`
	Name       string    `gorm:"not null" json:"name"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Row struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PageID      uuid.UUID `gorm:"type:uuid;index;not null" json:"page_id"`
	SourceText  string    `gorm:"not null" json:"source_text"`
	TranslatedA string    `json:"translated_a"`
	TranslatedB string    `json:"translated_b"`
	Status      string    `gorm:"index;default:pending" json:"status"`
	Remark      string    `json:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PromptTemplate is a reusable instruction block for the translation API.
type PromptTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Body      string    `gorm:"not null" json:"body"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusCount is one bucket of the per-page/per-project row aggregation.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func ValidRowStatus(s string) bool {
	switch s {
	case RowStatusPending, RowStatusTranslated, RowStatusReviewed, RowStatusApproved:
		return true
	}
	return false
}
