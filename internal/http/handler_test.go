package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rc-service/internal/config"
	"rc-service/internal/domain/rc"
	"rc-service/internal/parser"
	"rc-service/internal/repository"
	"rc-service/internal/service"
)

const testSecret = "handler-test-secret"

type fakeStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]rc.StoredRecord
}

func (f *fakeStore) CreateRecord(_ context.Context, rec *rc.StoredRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[rec.ID] = *rec
	return nil
}

func (f *fakeStore) GetRecord(_ context.Context, id uuid.UUID) (*rc.StoredRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeStore) ListRecords(_ context.Context, normalizedRegNo *string, _, _ int) ([]rc.StoredRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []rc.StoredRecord{}
	for _, rec := range f.records {
		if normalizedRegNo == nil || rec.Record.RegNo == *normalizedRegNo {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateRecord(_ context.Context, rec *rc.StoredRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[rec.ID]; !ok {
		return repository.ErrNotFound
	}
	f.records[rec.ID] = *rec
	return nil
}

func (f *fakeStore) DeleteRecord(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) DeleteRecordsOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeStore{records: make(map[uuid.UUID]rc.StoredRecord)}
	svc := service.NewRCService(store, parser.New(parser.Options{}), zerolog.Nop())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{CORSAllowedOrigins: []string{"https://app.example"}},
		Auth: config.AuthConfig{JWTSecret: testSecret},
	}
	return NewRouter(NewHandler(svc, zerolog.Nop()), cfg, zerolog.Nop())
}

func signToken(t *testing.T, secret string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator-1",
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func do(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

var parseBody = map[string]any{
	"text":       "REG NO: KA01AB1234\nOWNER NAME: RAMESH KUMAR\nCOLOUR: WHITE",
	"confidence": 88,
}

func TestParseEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/rc/parse", parseBody, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[rc.ParseResult](t, w)
	assert.Equal(t, "KA01AB1234", env.Data.Record.RegNo)
	assert.Equal(t, "WHITE", env.Data.Record.Colour)
	assert.Equal(t, 3, env.Data.Quality.FieldsFound)
	assert.Equal(t, parser.TierHigh, env.Data.Quality.ConfidenceTier)

	var raw map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Len(t, raw["data"]["record"], 26, "24 fields plus confidence and extraction date")
}

func TestParseEndpointBadRequests(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/rc/parse", map[string]any{"text": "REG NO"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[any](t, w).Error, "confidence is required")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rc/parse", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteEndpointsRequireToken(t *testing.T) {
	r := newTestRouter(t)
	id := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{"create without token", http.MethodPost, "/api/v1/rc/records", ""},
		{"update without token", http.MethodPut, "/api/v1/rc/records/" + id, ""},
		{"delete without token", http.MethodDelete, "/api/v1/rc/records/" + id, ""},
		{"wrong secret", http.MethodPost, "/api/v1/rc/records", signToken(t, "other", time.Now().Add(time.Hour))},
		{"expired token", http.MethodPost, "/api/v1/rc/records", signToken(t, testSecret, time.Now().Add(-time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, parseBody, tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRecordLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := signToken(t, testSecret, time.Now().Add(time.Hour))

	w := do(r, http.MethodPost, "/api/v1/rc/records", parseBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[rc.StoredRecord](t, w).Data
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "operator-1", created.ClientID)

	path := "/api/v1/rc/records/" + created.ID.String()

	w = do(r, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RAMESH KUMAR", decode[rc.StoredRecord](t, w).Data.Record.OwnerName)

	w = do(r, http.MethodGet, "/api/v1/rc/records?reg_no=ka-01-ab-1234", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]rc.StoredRecord](t, w).Data, 1)

	w = do(r, http.MethodPut, path, rc.UpdateRequest{Fields: map[string]string{"fuelType": "PETROL"}}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[rc.StoredRecord](t, w).Data
	assert.True(t, updated.ManuallyEdited)
	assert.Equal(t, "PETROL", updated.Record.FuelType)
	assert.Equal(t, 4, updated.Quality.FieldsFound)

	w = do(r, http.MethodPut, path, rc.UpdateRequest{Fields: map[string]string{"nickname": "X"}}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecordInvalidID(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/rc/records/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	do(r, http.MethodPost, "/api/v1/rc/parse", parseBody, "")
	w = do(r, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rc_parser_parse_ops_total")
	assert.Contains(t, w.Body.String(), "rc_http_request_duration_seconds")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rc/parse", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
