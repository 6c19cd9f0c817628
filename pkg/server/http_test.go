package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/filecommerce/pkg/logger"
	"github.com/abgdnv/filecommerce/pkg/web"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewChiRouter_AccessLogCarriesRequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := slog.New(logger.NewContextHandler(slog.NewJSONHandler(&buf, nil)))
	mux := NewChiRouter(log)
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// when
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Request completed", entry["msg"])
	reqID, ok := entry["request_id"].(string)
	require.True(t, ok, "access log must carry a request_id attribute")
	require.NotEmpty(t, reqID)
	_, err := uuid.Parse(reqID)
	assert.NoError(t, err, "request_id should be a generated UUID")
}

func Test_NewChiRouter_HandlerSeesSameRequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	mux := NewChiRouter(log)
	var seen string
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		seen, _ = web.GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// when
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// then
	require.NotEmpty(t, seen)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, seen, entry["request_id"], "access log and handler must observe the same id")
}
