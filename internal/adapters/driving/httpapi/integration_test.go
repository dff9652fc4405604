package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft"
	"github.com/custodia-labs/sharepoint-reader/internal/connectors/microsoft/sharepoint"
	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/services"
	"github.com/custodia-labs/sharepoint-reader/internal/normalisers"
)

const listBody = `{"value":[
	{"id":"F1","name":"a.pdf","lastModifiedDateTime":"2024-05-01T10:00:00Z",
	 "file":{"mimeType":"application/pdf"},
	 "parentReference":{"path":"/drives/b!x/root:/Shared"}},
	{"id":"D1","name":"Reports","folder":{"childCount":3},
	 "parentReference":{"path":"/drives/b!x/root:"}},
	{"id":"F2","name":"notes.txt",
	 "file":{"mimeType":"text/plain"},
	 "parentReference":{"path":"/drives/b!x/root:/Shared/Sub"}}
]}`

// stack wires the real service against fake identity and Graph endpoints.
type stack struct {
	router      http.Handler
	tokenCalls  *int32
	graphCalls  *int32
	graphServer *httptest.Server
}

func newStack(t *testing.T, cfg *domain.Config, tokenStatus int, tokenBody string, graph http.HandlerFunc) *stack {
	t.Helper()
	return newStackWithToken(t, cfg, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(tokenStatus)
		_, _ = w.Write([]byte(tokenBody))
	}, graph)
}

// newStackWithToken is newStack with a scripted identity endpoint.
func newStackWithToken(t *testing.T, cfg *domain.Config, token, graph http.HandlerFunc) *stack {
	t.Helper()
	var tokenCalls, graphCalls int32

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		token(w, r)
	}))
	t.Cleanup(tokenServer.Close)

	graphServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&graphCalls, 1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		graph(w, r)
	}))
	t.Cleanup(graphServer.Close)

	cfg.LoginBaseURL = tokenServer.URL
	cfg.GraphBaseURL = graphServer.URL
	cfg.SiteID = "site"

	storeCfg, err := sharepoint.ParseConfig(cfg)
	require.NoError(t, err)

	svc := services.NewDocumentService(
		cfg,
		microsoft.NewClientCredentials(cfg, tokenServer.Client()),
		sharepoint.New(storeCfg, microsoft.NewClient(graphServer.Client(), nil)),
		normalisers.NewRegistry(),
	)

	return &stack{
		router:      NewRouter(cfg.Route, svc),
		tokenCalls:  &tokenCalls,
		graphCalls:  &graphCalls,
		graphServer: graphServer,
	}
}

func (s *stack) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func credentials() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.TenantID = "tenant"
	cfg.ClientID = "client"
	cfg.ClientSecret = "secret"
	return cfg
}

const okToken = `{"token_type":"Bearer","expires_in":3599,"access_token":"tok"}`

func TestIntegration_MissingConfigMakesNoCalls(t *testing.T) {
	cfg := credentials()
	cfg.ClientSecret = ""
	s := newStack(t, cfg, http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {})

	rec := s.get("/api/HttpTrigger1?list=true")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Missing environment variables."}`, rec.Body.String())
	assert.Equal(t, int32(0), atomic.LoadInt32(s.tokenCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(s.graphCalls))
}

func TestIntegration_TokenRejected(t *testing.T) {
	s := newStack(t, credentials(), http.StatusBadRequest, "AADSTS7000215: Invalid client secret",
		func(w http.ResponseWriter, _ *http.Request) {})

	rec := s.get("/api/HttpTrigger1?list=true")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to get access token.","details":"AADSTS7000215: Invalid client secret"}`,
		rec.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(s.tokenCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(s.graphCalls))
}

func TestIntegration_TokenMissing(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, `{"token_type":"Bearer"}`,
		func(w http.ResponseWriter, _ *http.Request) {})

	rec := s.get("/api/HttpTrigger1")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Token missing from response.","details":{"token_type":"Bearer"}}`, rec.Body.String())
}

func TestIntegration_List(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site/drive/root/children", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("$top"))
		_, _ = w.Write([]byte(listBody))
	})

	rec := s.get("/api/HttpTrigger1?list=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Len(t, entry, 5)
	}
	assert.JSONEq(t, `[
		{"name":"a.pdf","fileId":"F1","type":"pdf","lastModified":"2024-05-01T10:00:00Z","path":"Shared/a.pdf"},
		{"name":"notes.txt","fileId":"F2","type":"plain","lastModified":"","path":"Shared/Sub/notes.txt"}
	]`, rec.Body.String())
}

func TestIntegration_ListForwardsStatus(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	})

	rec := s.get("/api/HttpTrigger1?list=true")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to list files.","details":"denied"}`, rec.Body.String())
}

func TestIntegration_FetchText(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site/drive/items/F2/content", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("hello\xffworld"))
	})

	rec := s.get("/api/HttpTrigger1?fileId=F2&debug=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "hello�world", body["content"])
	assert.Equal(t, s.graphServer.URL+"/sites/site/drive/items/F2/content", body["contentUrl"])
}

func TestIntegration_FetchSummary(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	})

	rec := s.get("/api/HttpTrigger1?fileId=F2&summary=true")

	require.Equal(t, http.StatusOK, rec.Code)
	var body domain.FileContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, strings.Repeat("x", 2000)+"\n...\n[Content truncated]", body.Content)
	assert.Nil(t, body.ContentURL)
}

func TestIntegration_FetchNotFound(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"itemNotFound"}}`))
	})

	rec := s.get("/api/HttpTrigger1?fileId=missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch file content.", body["error"])
	assert.Equal(t, "Microsoft Graph returned an error.", body["reason"])
	assert.Equal(t, "missing", body["fileId"])
	assert.Equal(t, s.graphServer.URL+"/sites/site/drive/items/missing/content", body["graphUrl"])
	assert.Equal(t, float64(404), body["statusCode"])
	assert.Equal(t, `{"error":{"code":"itemNotFound"}}`, body["graphResponse"])
}

func TestIntegration_FetchCorruptDocument(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		_, _ = w.Write([]byte("not a zip"))
	})

	rec := s.get("/api/HttpTrigger1?fileId=F1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to parse file.", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestIntegration_ReadinessStillFetchesToken(t *testing.T) {
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {})

	rec := s.get("/api/HttpTrigger1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(s.tokenCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(s.graphCalls))
}

func TestIntegration_TokenThrottleDoesNotDelayNextRequest(t *testing.T) {
	var answered int32
	s := newStackWithToken(t, credentials(), func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&answered, 1) == 1 {
			w.Header().Set("Retry-After", "120")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("throttled"))
			return
		}
		_, _ = w.Write([]byte(okToken))
	}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":[]}`))
	})

	rec := s.get("/api/HttpTrigger1?list=true")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `{"error":"Failed to get access token.","details":"throttled"}`, rec.Body.String())

	start := time.Now()
	rec = s.get("/api/HttpTrigger1?list=true")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	assert.Equal(t, int32(2), atomic.LoadInt32(s.tokenCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(s.graphCalls))
}

func TestIntegration_GraphThrottleForwardedPerRequest(t *testing.T) {
	var answered int32
	s := newStack(t, credentials(), http.StatusOK, okToken, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&answered, 1) == 1 {
			w.Header().Set("Retry-After", "120")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("slow down"))
			return
		}
		_, _ = w.Write([]byte(`{"value":[]}`))
	})

	rec := s.get("/api/HttpTrigger1?list=true")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, `{"error":"Failed to list files.","details":"slow down"}`, rec.Body.String())

	start := time.Now()
	rec = s.get("/api/HttpTrigger1?list=true")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(s.graphCalls))
}
