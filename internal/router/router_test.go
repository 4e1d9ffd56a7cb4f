package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/scripts/internal/config"
	"github.com/deppfellow/scripts/internal/handler"
	"github.com/deppfellow/scripts/internal/middleware"
	"github.com/deppfellow/scripts/internal/model"
	"github.com/deppfellow/scripts/internal/repository/repositorytest"
	"github.com/deppfellow/scripts/internal/server"
	"github.com/deppfellow/scripts/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.ServerConfig{Port: "8080", CORSAllowedOrigins: []string{"*"}},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, seed ...model.Script) (*echo.Echo, *repositorytest.MemoryStore) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	store := repositorytest.NewMemoryStore(seed...)
	services := &service.Services{
		Scripts: service.NewScriptService(store, service.NopNotifier{}),
	}

	return NewRouter(s, handler.NewHandlers(s, services)), store
}

func do(e *echo.Echo, method, target, ctype, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if ctype != "" {
		req.Header.Set(echo.HeaderContentType, ctype)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	return do(e, method, target, echo.MIMEApplicationJSON, body)
}

var stored = model.Script{ID: 1, Title: "A", Position: "1", Status: "active"}

func TestCreateReadRoundTrip(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/scripts/", `{"title":"A","position":"1","status":"active"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A","position":"1","status":"active"}}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/scripts/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A","position":"1","status":"active"}}`, rec.Body.String())
}

func TestCreateIgnoresUnknownFields(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/scripts/", `{"id":99,"title":"A","position":2,"status":"active","owner":"x"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A","position":"2","status":"active"}}`, rec.Body.String())
}

func TestCreateKeepsLargeIntegers(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/scripts/", `{"title":"A","position":9007199254740993,"status":"active"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/scripts/1", "")
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A","position":"9007199254740993","status":"active"}}`, rec.Body.String())
}

func TestCreateFromFormAndQuery(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := do(e, http.MethodPost, "/scripts/?status=draft", echo.MIMEApplicationForm, "title=B&position=3")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"B","position":"3","status":"draft"}}`, rec.Body.String())
}

func TestCreateValidationFailure(t *testing.T) {
	e, store := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodPost, "/scripts/", `{"title":"  ","position":"1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t,
		`{"status":false,"message":"title: title must not be empty; status: status must not be empty"}`,
		rec.Body.String())
	assert.Zero(t, store.Len())
}

func TestList(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodGet, "/scripts/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":[]}`, rec.Body.String())

	e, _ = newTestRouter(t, testConfig(), stored, model.Script{ID: 2, Title: "B", Position: "2", Status: "draft"})
	rec = doJSON(e, http.MethodGet, "/scripts/", "")
	assert.JSONEq(t, `{"status":true,"data":[
		{"id":1,"title":"A","position":"1","status":"active"},
		{"id":2,"title":"B","position":"2","status":"draft"}
	]}`, rec.Body.String())
}

func TestUpdate(t *testing.T) {
	e, _ := newTestRouter(t, testConfig(), stored)

	rec := doJSON(e, http.MethodPut, "/scripts/1", `{"title":"A2","position":"5","status":"draft"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A2","position":"5","status":"draft"}}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/scripts/1", "")
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A2","position":"5","status":"draft"}}`, rec.Body.String())
}

func TestUpdateWithUnchangedValues(t *testing.T) {
	e, _ := newTestRouter(t, testConfig(), stored)

	rec := doJSON(e, http.MethodPut, "/scripts/1", `{"title":"A","position":"1","status":"active"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":true,"data":{"id":1,"title":"A","position":"1","status":"active"}}`, rec.Body.String())
}

func TestUpdateWithEmptyTitleLeavesRowUnchanged(t *testing.T) {
	e, store := newTestRouter(t, testConfig(), stored)

	rec := doJSON(e, http.MethodPut, "/scripts/1", `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	got, err := store.Find(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, stored, *got)
}

func TestUpdateConflict(t *testing.T) {
	e, store := newTestRouter(t, testConfig(), stored)
	zero := int64(0)
	store.UpdateAffected = &zero

	rec := doJSON(e, http.MethodPut, "/scripts/1", `{"title":"A","position":"1","status":"active"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Entry already updated"}`, rec.Body.String())
}

func TestDelete(t *testing.T) {
	e, _ := newTestRouter(t, testConfig(), stored)

	rec := doJSON(e, http.MethodDelete, "/scripts/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":true}`, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/scripts/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Entry not found"}`, rec.Body.String())
}

func TestFailures(t *testing.T) {
	for _, tc := range []struct {
		name   string
		method string
		target string
		ctype  string
		body   string
		status int
		msg    string
	}{
		{"absent id", http.MethodGet, "/scripts/999", "", "", http.StatusNotFound, "Entry not found"},
		{"zero id", http.MethodGet, "/scripts/0", "", "", http.StatusBadRequest, "Required argument does not exists: id"},
		{"zero id on delete", http.MethodDelete, "/scripts/0", "", "", http.StatusBadRequest, "Required argument does not exists: id"},
		{"non-digit id", http.MethodGet, "/scripts/abc", "", "", http.StatusNotFound, "Route not found"},
		{"negative id", http.MethodPut, "/scripts/-1", echo.MIMEApplicationJSON, "{}", http.StatusNotFound, "Route not found"},
		{"overflowing id", http.MethodGet, "/scripts/99999999999999999999", "", "", http.StatusNotFound, "Route not found"},
		{"unknown route", http.MethodGet, "/nope", "", "", http.StatusNotFound, "Route not found"},
		{"update absent", http.MethodPut, "/scripts/7", echo.MIMEApplicationJSON, `{"title":"A","position":"1","status":"x"}`, http.StatusNotFound, "Entry not found"},
		{"malformed json", http.MethodPost, "/scripts/", echo.MIMEApplicationJSON, `{"title":`, http.StatusBadRequest, "Malformed request body"},
		{"non-scalar value", http.MethodPost, "/scripts/", echo.MIMEApplicationJSON, `{"title":{"a":1},"position":"1","status":"x"}`, http.StatusBadRequest, "Invalid value for field: title"},
		{"unsupported media", http.MethodPost, "/scripts/", echo.MIMETextPlain, "title=A", http.StatusUnsupportedMediaType, "Unsupported Media Type"},
		{"method not allowed", http.MethodPatch, "/scripts/1", "", "", http.StatusMethodNotAllowed, "Method Not Allowed"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestRouter(t, testConfig(), stored)

			rec := do(e, tc.method, tc.target, tc.ctype, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"status":false,"message":"`+tc.msg+`"}`, rec.Body.String())
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodGet, "/scripts/", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/scripts/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = 1
	e, _ := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, doJSON(e, http.MethodGet, "/scripts/", "").Code)

	rec := doJSON(e, http.MethodGet, "/scripts/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Too many requests"}`, rec.Body.String())
}

func TestSystemRoutes(t *testing.T) {
	e, _ := newTestRouter(t, testConfig())

	rec := doJSON(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = doJSON(e, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = doJSON(e, http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi"`)
}
