package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Capability names one remote analysis the application can run.
type Capability string

const (
	CapabilityAuthors      Capability = "authors"
	CapabilityConcepts     Capability = "concepts"
	CapabilityEntities     Capability = "entities"
	CapabilityKeywords     Capability = "keywords"
	CapabilityLanguage     Capability = "language"
	CapabilityMicroformats Capability = "microformats"
	CapabilityPubDate      Capability = "pubdate"
	CapabilitySentiment    Capability = "sentiment"
	CapabilityRelations    Capability = "relations"
	CapabilityNews         Capability = "news"
	CapabilityTranslate    Capability = "translate"
)

// URLCapabilities are the capabilities driven by a page URL (or, for
// authors, posted HTML). News and translate take their own requests.
var URLCapabilities = []Capability{
	CapabilityAuthors,
	CapabilityConcepts,
	CapabilityEntities,
	CapabilityKeywords,
	CapabilityLanguage,
	CapabilityMicroformats,
	CapabilityPubDate,
	CapabilitySentiment,
	CapabilityRelations,
}

// ParseCapability accepts any capability name, case-insensitively.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CapabilityAuthors, CapabilityConcepts, CapabilityEntities, CapabilityKeywords,
		CapabilityLanguage, CapabilityMicroformats, CapabilityPubDate, CapabilitySentiment,
		CapabilityRelations, CapabilityNews, CapabilityTranslate:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCapability, s)
}

// SupportsKnowledgeGraph reports whether the capability accepts the knowledgeGraph flag.
func (c Capability) SupportsKnowledgeGraph() bool {
	switch c {
	case CapabilityConcepts, CapabilityEntities, CapabilityKeywords:
		return true
	}
	return false
}

// AnalysisRequest asks for one URL-driven capability. It is also the
// payload of queued analysis jobs.
type AnalysisRequest struct {
	Capability     Capability `json:"capability"`
	URL            string     `json:"url,omitempty"`
	HTML           string     `json:"html,omitempty"` // authors only
	KnowledgeGraph bool       `json:"knowledge_graph,omitempty"`
}

// Validate checks the request before any network call is made.
func (r AnalysisRequest) Validate() error {
	if _, err := ParseCapability(string(r.Capability)); err != nil {
		return err
	}
	if r.Capability == CapabilityNews || r.Capability == CapabilityTranslate {
		return fmt.Errorf("%w: %s is not a URL capability", ErrValidation, r.Capability)
	}
	if r.HTML != "" && r.Capability != CapabilityAuthors {
		return fmt.Errorf("%w: html input is only supported for %s", ErrValidation, CapabilityAuthors)
	}
	if r.URL == "" && r.HTML == "" {
		return fmt.Errorf("%w: url is required", ErrValidation)
	}
	return nil
}

// Input is the short form of what was analysed, as stored in history.
func (r AnalysisRequest) Input() string {
	if r.HTML != "" {
		if r.URL != "" {
			return fmt.Sprintf("html:%d bytes (%s)", len(r.HTML), r.URL)
		}
		return fmt.Sprintf("html:%d bytes", len(r.HTML))
	}
	return r.URL
}

// AnalysisRecord is one completed call, successful or not.
type AnalysisRecord struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Capability   Capability      `json:"capability" db:"capability"`
	Input        string          `json:"input" db:"input"`
	Status       string          `json:"status" db:"status"`
	Result       json.RawMessage `json:"result,omitempty" db:"result"`
	ErrorKind    *string         `json:"error_kind,omitempty" db:"error_kind"`
	ErrorCode    *int            `json:"error_code,omitempty" db:"error_code"`
	ErrorMessage *string         `json:"error_message,omitempty" db:"error_message"`
	Transactions int             `json:"transactions" db:"transactions"`
	DurationMs   int64           `json:"duration_ms" db:"duration_ms"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// Succeeded reports whether the call produced a result.
func (r *AnalysisRecord) Succeeded() bool {
	return r.Status == AnalysisStatusSucceeded
}

// UsageSummary aggregates history per capability.
type UsageSummary struct {
	Capability   Capability `json:"capability" db:"capability"`
	Calls        int64      `json:"calls" db:"calls"`
	Failures     int64      `json:"failures" db:"failures"`
	Transactions int64      `json:"transactions" db:"transactions"`
}

// ListFilter narrows history listings.
type ListFilter struct {
	Capability Capability
	Limit      int
	Offset     int
}

// Normalize applies the default page size.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
