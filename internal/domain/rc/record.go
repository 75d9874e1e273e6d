package rc

import (
	"time"

	"github.com/google/uuid"
)

// ParseRequest carries one OCR result to be parsed.
type ParseRequest struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence"`
	ClientID   string   `json:"client_id,omitempty"`
}

type ParseResult struct {
	Record  ParsedRecord  `json:"record"`
	Quality QualityReport `json:"quality"`
}

// UpdateRequest replaces individual fields after a manual review.
// Keys are Field names.
type UpdateRequest struct {
	Fields map[string]string `json:"fields"`
}

// StoredRecord is a parsed record as persisted by the service.
type StoredRecord struct {
	ID             uuid.UUID     `json:"id"`
	ClientID       string        `json:"client_id,omitempty"`
	Record         ParsedRecord  `json:"record"`
	Quality        QualityReport `json:"quality"`
	ManuallyEdited bool          `json:"manually_edited"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
