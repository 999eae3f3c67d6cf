package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"alchemy/internal/models"
	"alchemy/internal/store"
	"alchemy/pkg/alchemydatanews"
	"alchemy/pkg/alchemylanguage"
	"alchemy/pkg/languagetranslation"
	"alchemy/pkg/watson"
)

var resultJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// AnalysisService runs capabilities against the Watson clients and keeps a
// history record of every completed call.
type AnalysisService struct {
	language    *alchemylanguage.Service
	news        *alchemydatanews.Service
	translation *languagetranslation.Service
	results     store.ResultStore
}

// NewAnalysisService returns a service that records into results.
func NewAnalysisService(lang *alchemylanguage.Service, news *alchemydatanews.Service, tr *languagetranslation.Service, results store.ResultStore) *AnalysisService {
	if results == nil {
		results = store.NoopStore{}
	}
	return &AnalysisService{
		language:    lang,
		news:        news,
		translation: tr,
		results:     results,
	}
}

// Analyze runs one URL capability. When the remote call fails the returned
// record describes the failure and the error is the SDK error; a nil record
// means nothing was sent (validation failure or unsupported capability).
func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Capability == models.CapabilityRelations {
		opts := alchemylanguage.RelationsOptions{KnowledgeGraph: req.KnowledgeGraph}
		return nil, s.language.GetRelationsURL(ctx, req.URL, opts, func(watson.Result[json.RawMessage]) {})
	}

	start := time.Now()
	value, err := s.dispatch(ctx, req)
	return s.record(ctx, req.Capability, req.Input(), start, value, err)
}

func (s *AnalysisService) dispatch(ctx context.Context, req models.AnalysisRequest) (interface{}, error) {
	graph := alchemylanguage.GraphOptions{KnowledgeGraph: req.KnowledgeGraph}
	lang := s.language

	switch req.Capability {
	case models.CapabilityAuthors:
		if req.HTML != "" {
			return await(func(done func(watson.Result[alchemylanguage.DocumentAuthors])) {
				lang.GetAuthorsHTML(ctx, req.HTML, alchemylanguage.HTMLOptions{URL: req.URL}, done)
			})
		}
		return await(func(done func(watson.Result[alchemylanguage.DocumentAuthors])) {
			lang.GetAuthorsURL(ctx, req.URL, done)
		})
	case models.CapabilityConcepts:
		return await(func(done func(watson.Result[alchemylanguage.ConceptResponse])) {
			lang.GetRankedConceptsURL(ctx, req.URL, graph, done)
		})
	case models.CapabilityEntities:
		return await(func(done func(watson.Result[alchemylanguage.Entities])) {
			lang.GetRankedNamedEntitiesURL(ctx, req.URL, graph, done)
		})
	case models.CapabilityKeywords:
		return await(func(done func(watson.Result[alchemylanguage.Keywords])) {
			lang.GetRankedKeywordsURL(ctx, req.URL, graph, done)
		})
	case models.CapabilityLanguage:
		return await(func(done func(watson.Result[alchemylanguage.Language])) {
			lang.GetLanguageURL(ctx, req.URL, done)
		})
	case models.CapabilityMicroformats:
		return await(func(done func(watson.Result[alchemylanguage.Microformats])) {
			lang.GetMicroformatDataURL(ctx, req.URL, done)
		})
	case models.CapabilityPubDate:
		return await(func(done func(watson.Result[alchemylanguage.PublicationResponse])) {
			lang.GetPubDateURL(ctx, req.URL, done)
		})
	case models.CapabilitySentiment:
		return await(func(done func(watson.Result[alchemylanguage.DocumentSentiment])) {
			lang.GetTextSentimentURL(ctx, req.URL, done)
		})
	}
	return nil, fmt.Errorf("%w: %s", models.ErrUnknownCapability, req.Capability)
}

// await adapts watson.Await to the untyped dispatch table above.
func await[T any](start func(done func(watson.Result[T]))) (interface{}, error) {
	v, err := watson.Await(start)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Translate runs a translation and records it.
func (s *AnalysisService) Translate(ctx context.Context, req languagetranslation.TranslateRequest) (*models.AnalysisRecord, error) {
	if len(req.Text) == 0 {
		return nil, fmt.Errorf("%w: text is required", models.ErrValidation)
	}
	if req.ModelID == "" && (req.Source == "" || req.Target == "") {
		return nil, fmt.Errorf("%w: either model_id or both source and target are required", models.ErrValidation)
	}

	start := time.Now()
	value, err := await(func(done func(watson.Result[languagetranslation.TranslateResponse])) {
		s.translation.Translate(ctx, req, done)
	})
	return s.record(ctx, models.CapabilityTranslate, translateInput(req), start, value, err)
}

func translateInput(req languagetranslation.TranslateRequest) string {
	model := req.ModelID
	if model == "" {
		model = req.Source + "-" + req.Target
	}
	first := req.Text[0]
	if utf8.RuneCountInString(first) > 80 {
		first = string([]rune(first)[:80]) + "..."
	}
	if len(req.Text) == 1 {
		return fmt.Sprintf("%s: %s", model, first)
	}
	return fmt.Sprintf("%s: %s (+%d more)", model, first, len(req.Text)-1)
}

// News runs a news search and records it.
func (s *AnalysisService) News(ctx context.Context, q alchemydatanews.NewsQuery) (*models.AnalysisRecord, error) {
	start := time.Now()
	value, err := await(func(done func(watson.Result[alchemydatanews.NewsResponse])) {
		s.news.GetNews(ctx, q, done)
	})
	return s.record(ctx, models.CapabilityNews, newsInput(q), start, value, err)
}

func newsInput(q alchemydatanews.NewsQuery) string {
	parts := []string{}
	if q.Start != "" || q.End != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", q.Start, q.End))
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+q.Filters[k])
	}
	if len(parts) == 0 {
		return "news"
	}
	return strings.Join(parts, " ")
}

type transactional interface {
	Transactions() int
}

// record builds the history entry for a finished call and stores it. Storage
// failures are logged, not returned: the call itself already completed.
func (s *AnalysisService) record(ctx context.Context, capability models.Capability, input string, start time.Time, value interface{}, callErr error) (*models.AnalysisRecord, error) {
	rec := &models.AnalysisRecord{
		ID:         uuid.New(),
		Capability: capability,
		Input:      input,
		DurationMs: time.Since(start).Milliseconds(),
		CreatedAt:  start.UTC(),
	}

	if callErr != nil {
		rec.Status = models.AnalysisStatusFailed
		kind := string(watson.KindOf(callErr))
		msg := callErr.Error()
		rec.ErrorKind = &kind
		rec.ErrorMessage = &msg
		var svcErr *watson.ServiceError
		if errors.As(callErr, &svcErr) {
			code := svcErr.Code
			rec.ErrorCode = &code
		}
	} else {
		payload, err := resultJSON.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s result: %w", capability, err)
		}
		rec.Status = models.AnalysisStatusSucceeded
		rec.Result = payload
		if t, ok := value.(transactional); ok {
			rec.Transactions = t.Transactions()
		}
	}

	if err := s.results.RecordAnalysis(ctx, rec); err != nil {
		// Log the recording error but don't fail the call, it already completed.
		log.WithError(err).WithField("analysis_id", rec.ID).Warn("Failed to record analysis")
	}

	log.WithFields(log.Fields{
		"analysis_id":  rec.ID,
		"capability":   capability,
		"status":       rec.Status,
		"duration_ms":  rec.DurationMs,
		"transactions": rec.Transactions,
	}).Debug("Analysis finished")

	return rec, callErr
}

// GetAnalysis returns one history record.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	rec, err := s.results.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return rec, nil
}

// ListAnalyses returns history records, newest first.
func (s *AnalysisService) ListAnalyses(ctx context.Context, filter models.ListFilter) ([]*models.AnalysisRecord, error) {
	records, err := s.results.ListAnalyses(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

// Usage returns per-capability call, failure and transaction totals.
func (s *AnalysisService) Usage(ctx context.Context) ([]models.UsageSummary, error) {
	summaries, err := s.results.UsageSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}
	return summaries, nil
}
