// Package httpapi exposes the document service as the HTTP trigger
// the Functions host forwards requests to.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft"
	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

// Query parameters understood by the handler.
const (
	ParamList    = "list"
	ParamFileID  = "fileId"
	ParamSummary = "summary"
	ParamDebug   = "debug"
)

// Handler dispatches one request to listing, content retrieval or the
// readiness answer.
type Handler struct {
	service driving.DocumentService
}

// NewHandler creates a new Handler.
func NewHandler(service driving.DocumentService) *Handler {
	return &Handler{service: service}
}

// ServeHTTP implements http.Handler. Any method is accepted.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	logger.Info("[%s] sharepoint handler triggered", reqID)

	query := r.URL.Query()
	listFiles := query.Get(ParamList) == "true"
	fileID := query.Get(ParamFileID)
	opts := domain.ContentOptions{
		Summary: query.Get(ParamSummary) == "true",
		Debug:   query.Get(ParamDebug) == "true",
	}

	session, err := h.service.Open(ctx)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}

	switch {
	case listFiles:
		files, err := session.ListFiles(ctx)
		if err != nil {
			h.writeError(w, reqID, err)
			return
		}
		logger.Debug("[%s] listed %d files", reqID, len(files))
		writeJSON(w, http.StatusOK, files)

	case fileID != "":
		logger.Info("[%s] fetching file content for %s", reqID, fileID)
		content, err := session.GetContent(ctx, fileID, opts)
		if err != nil {
			h.writeError(w, reqID, err)
			return
		}
		writeJSON(w, http.StatusOK, content)

	default:
		writeJSON(w, http.StatusOK, StatusBody{Status: "ready", Message: MsgReady})
	}
}

// writeError maps service errors onto status codes and bodies.
func (h *Handler) writeError(w http.ResponseWriter, reqID string, err error) {
	var (
		authErr    *domain.AuthError
		storeErr   *domain.StoreError
		extractErr *domain.ExtractionError
	)

	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		logger.Error("[%s] %v", reqID, err)
		writeJSON(w, http.StatusInternalServerError, messageBody{Error: MsgMissingConfig})

	case errors.As(err, &authErr):
		logger.Error("[%s] %v", reqID, err)
		if authErr.MissingToken {
			writeJSON(w, http.StatusUnauthorized, ErrorBody{Error: MsgTokenMissing, Details: authErr.Parsed})
			return
		}
		writeJSON(w, http.StatusUnauthorized, ErrorBody{Error: MsgTokenFailed, Details: authErr.Body})

	case errors.As(err, &storeErr) && storeErr.Op == "fetch":
		logger.Error("[%s] file fetch failed", reqID)
		logger.Error("[%s] URL: %s", reqID, storeErr.URL)
		logger.Error("[%s] fileId: %s", reqID, storeErr.FileID)
		logger.Error("[%s] response code: %d", reqID, storeErr.StatusCode)
		logger.Error("[%s] response text: %s", reqID, storeErr.Body)
		if code, msg, ok := graphError(storeErr); ok {
			logger.Error("[%s] graph error: %s: %s", reqID, code, msg)
		}
		writeJSON(w, storeErr.StatusCode, FetchErrorBody{
			Error:         MsgFetchFailed,
			Reason:        MsgFetchReason,
			FileID:        storeErr.FileID,
			GraphURL:      storeErr.URL,
			StatusCode:    storeErr.StatusCode,
			GraphResponse: storeErr.Body,
		})

	case errors.As(err, &storeErr):
		logger.Error("[%s] list error: %s", reqID, storeErr.Body)
		if code, msg, ok := graphError(storeErr); ok {
			logger.Error("[%s] graph error: %s: %s", reqID, code, msg)
		}
		writeJSON(w, storeErr.StatusCode, ErrorBody{Error: MsgListFailed, Details: storeErr.Body})

	case errors.As(err, &extractErr):
		logger.Error("[%s] parse %s failed: %v", reqID, extractErr.Kind, err)
		writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: MsgParseFailed, Details: err.Error()})

	default:
		logger.Error("[%s] upstream request failed: %v", reqID, err)
		writeJSON(w, http.StatusBadGateway, ErrorBody{Error: MsgUpstream, Details: err.Error()})
	}
}

// graphError returns the Graph error code and message carried by a store
// failure, when the answer body had the {"error":{...}} shape.
func graphError(storeErr *domain.StoreError) (code, message string, ok bool) {
	var ge *microsoft.GraphError
	if !errors.As(storeErr.Err, &ge) || ge.Code == "" {
		return "", "", false
	}
	return ge.Code, ge.Message, true
}
