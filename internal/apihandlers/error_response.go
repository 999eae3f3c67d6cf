package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alchemy/internal/models"
	"alchemy/internal/store"
	"alchemy/pkg/watson"
)

// APIError defines standard error response
// Example: { "error": { "code": "bad_request", "message": "url is required" } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Upstream is the gateway's own error when the failure came from Watson.
	Upstream *watson.ServiceError `json:"upstream,omitempty"`
	// AnalysisID points at the history record of a failed call, if one was kept.
	AnalysisID string `json:"analysis_id,omitempty"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

func ServiceUnavailable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusServiceUnavailable, "unavailable", msg)
}

// StatusForError maps application and SDK errors to an HTTP status and error code.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnknownCapability):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, models.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrDisabled), errors.Is(err, store.ErrQueueDisabled):
		return http.StatusServiceUnavailable, "unavailable"
	}
	switch watson.KindOf(err) {
	case watson.KindUnsupported:
		return http.StatusNotImplemented, "unsupported"
	case watson.KindService:
		return http.StatusBadGateway, "upstream_error"
	case watson.KindDecode:
		return http.StatusBadGateway, "upstream_decode_error"
	case watson.KindTransport:
		return http.StatusGatewayTimeout, "upstream_unreachable"
	}
	return http.StatusInternalServerError, "internal_error"
}

// RespondError writes err with the status StatusForError picks.
func RespondError(ctx *gin.Context, err error, rec *models.AnalysisRecord) {
	status, code := StatusForError(err)
	apiErr := APIError{Code: code, Message: err.Error()}
	var svcErr *watson.ServiceError
	if errors.As(err, &svcErr) {
		apiErr.Upstream = svcErr
	}
	if rec != nil {
		apiErr.AnalysisID = rec.ID.String()
	}
	ctx.JSON(status, errorResponse{Error: apiErr})
}
