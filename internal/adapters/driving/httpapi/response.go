package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

// Response messages returned to callers.
const (
	MsgMissingConfig = "Missing environment variables."
	MsgTokenFailed   = "Failed to get access token."
	MsgTokenMissing  = "Token missing from response."
	MsgListFailed    = "Failed to list files."
	MsgFetchFailed   = "Failed to fetch file content."
	MsgFetchReason   = "Microsoft Graph returned an error."
	MsgParseFailed   = "Failed to parse file."
	MsgUpstream      = "Failed to reach Microsoft Graph."
	MsgInternal      = "Internal server error."
	MsgReady         = "Use 'list=true' to browse files, and 'fileId=...' to retrieve content. 'filename' is no longer supported."
)

// ErrorBody is the generic error envelope.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details"`
}

// FetchErrorBody reports a failed content download.
type FetchErrorBody struct {
	Error         string `json:"error"`
	Reason        string `json:"reason"`
	FileID        string `json:"fileId"`
	GraphURL      string `json:"graphUrl"`
	StatusCode    int    `json:"statusCode"`
	GraphResponse string `json:"graphResponse"`
}

// StatusBody is returned when neither list nor fileId is requested.
type StatusBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// messageBody carries an error without details.
type messageBody struct {
	Error string `json:"error"`
}

// Marshal encodes v the way every response body is encoded.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// setHeaders applies the JSON content type and permissive CORS headers.
func setHeaders(h http.Header) {
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := Marshal(v)
	if err != nil {
		logger.Error("httpapi: encode response: %v", err)
		code = http.StatusInternalServerError
		body = []byte(`{"error":"Failed to encode response."}`)
	}
	setHeaders(w.Header())
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
