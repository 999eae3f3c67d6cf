package apihandlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alchemy/internal/models"
	"alchemy/internal/store"
	"alchemy/pkg/alchemydatanews"
	"alchemy/pkg/languagetranslation"
)

// AnalysisService is what the handlers need from services.AnalysisService.
type AnalysisService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisRecord, error)
	Translate(ctx context.Context, req languagetranslation.TranslateRequest) (*models.AnalysisRecord, error)
	News(ctx context.Context, q alchemydatanews.NewsQuery) (*models.AnalysisRecord, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, filter models.ListFilter) ([]*models.AnalysisRecord, error)
	Usage(ctx context.Context) ([]models.UsageSummary, error)
}

type APIHandler struct {
	Service AnalysisService
	Jobs    store.JobClient // nil when Redis is not configured
}

func NewAPIHandler(svc AnalysisService, jobs store.JobClient) *APIHandler {
	return &APIHandler{Service: svc, Jobs: jobs}
}

// Register mounts all routes on r.
func (h *APIHandler) Register(r gin.IRouter) {
	r.GET("/health", h.HealthHandler)

	api := r.Group("/api/v1")
	api.POST("/analyze", h.AnalyzeHandler)
	api.POST("/jobs", h.EnqueueHandler)
	api.POST("/translate", h.TranslateHandler)
	api.GET("/news", h.NewsHandler)
	api.GET("/analyses", h.ListAnalysesHandler)
	api.GET("/analyses/:id", h.GetAnalysisHandler)
	api.GET("/usage", h.UsageHandler)
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	Capability     string `json:"capability" binding:"required"`
	URL            string `json:"url"`
	HTML           string `json:"html"`
	KnowledgeGraph bool   `json:"knowledge_graph"`
}

func (r analyzeRequest) toModel() (models.AnalysisRequest, error) {
	capability, err := models.ParseCapability(r.Capability)
	if err != nil {
		return models.AnalysisRequest{}, err
	}
	return models.AnalysisRequest{
		Capability:     capability,
		URL:            r.URL,
		HTML:           r.HTML,
		KnowledgeGraph: r.KnowledgeGraph,
	}, nil
}

func (h *APIHandler) AnalyzeHandler(c *gin.Context) {
	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req, err := body.toModel()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	rec, err := h.Service.Analyze(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err, rec)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *APIHandler) EnqueueHandler(c *gin.Context) {
	if h.Jobs == nil {
		ServiceUnavailable(c, store.ErrQueueDisabled.Error())
		return
	}
	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req, err := body.toModel()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	taskID, err := h.Jobs.EnqueueAnalysis(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err, nil)
		return
	}
	log.WithFields(log.Fields{"task_id": taskID, "capability": req.Capability}).Info("API: analysis job enqueued")
	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"task_id": taskID, "status": models.JobStatusEnqueued}})
}

func (h *APIHandler) TranslateHandler(c *gin.Context) {
	var req languagetranslation.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	rec, err := h.Service.Translate(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err, rec)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

// NewsHandler maps query parameters onto a news search. Parameters starting
// with "q." are passed through as filters; "return" is a comma-separated field list.
func (h *APIHandler) NewsHandler(c *gin.Context) {
	q := alchemydatanews.NewsQuery{
		Start:   c.Query("start"),
		End:     c.Query("end"),
		Filters: map[string]string{},
	}
	if countStr := c.Query("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 0 {
			BadRequest(c, "Invalid count parameter")
			return
		}
		q.Count = count
	}
	if ret := c.Query("return"); ret != "" {
		q.Return = strings.Split(ret, ",")
	}
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, "q.") && len(values) > 0 {
			q.Filters[key] = values[0]
		}
	}

	rec, err := h.Service.News(c.Request.Context(), q)
	if err != nil {
		RespondError(c, err, rec)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *APIHandler) ListAnalysesHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		BadRequest(c, "Invalid limit parameter")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		BadRequest(c, "Invalid offset parameter")
		return
	}
	filter := models.ListFilter{Limit: limit, Offset: offset}
	if name := c.Query("capability"); name != "" {
		parsed, err := models.ParseCapability(name)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		filter.Capability = parsed
	}

	records, err := h.Service.ListAnalyses(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err, nil)
		return
	}
	if records == nil {
		records = []*models.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *APIHandler) GetAnalysisHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "Invalid analysis ID")
		return
	}
	rec, err := h.Service.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *APIHandler) UsageHandler(c *gin.Context) {
	usage, err := h.Service.Usage(c.Request.Context())
	if err != nil {
		RespondError(c, err, nil)
		return
	}
	if usage == nil {
		usage = []models.UsageSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"data": usage})
}
