package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"patient-records-api/pkg/reqctx"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := NewRequestIDMiddleware().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestRequestIDPreserved(t *testing.T) {
	var seen string
	h := NewRequestIDMiddleware().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "client-123", seen)
	assert.Equal(t, "client-123", rec.Header().Get(HeaderRequestID))
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "too long", header: strings.Repeat("a", 300)},
		{name: "one past the column width", header: strings.Repeat("b", maxRequestIDLength+1)},
		{name: "unsafe characters", header: "abc def"},
		{name: "newline injection", header: "abc\ninjected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := NewRequestIDMiddleware().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = reqctx.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header[HeaderRequestID] = []string{tt.header}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.NotEqual(t, tt.header, seen)
			_, err := uuid.Parse(seen)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(seen), maxRequestIDLength)
			assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
		})
	}
}

func TestRequestIDKeepsHeaderAtColumnWidth(t *testing.T) {
	var seen string
	h := NewRequestIDMiddleware().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.RequestIDFromContext(r.Context())
	}))

	rid := strings.Repeat("x", maxRequestIDLength)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, rid)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, rid, seen)
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := NewCORSMiddleware("").Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), HeaderRequestID)
}

func TestCORSSingleOrigin(t *testing.T) {
	h := NewCORSMiddleware("https://clinic.example").Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	assert.Equal(t, HeaderRequestID, rec.Header().Get("Access-Control-Expose-Headers"))
}

func newInstrumentedRouter(log *logrus.Logger, reg prometheus.Registerer) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/patients/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	r.Use(NewRequestIDMiddleware().Handle)
	r.Use(NewLoggingMiddleware(log).Handle)
	r.Use(NewMetricsMiddleware(reg).Handle)
	return r
}

func TestMetricsCountByRouteTemplate(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	reg := prometheus.NewRegistry()
	r := newInstrumentedRouter(log, reg)

	for _, path := range []string{"/patients/1", "/patients/2", "/patients/404"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "http_server_request_count" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, label := range metric.GetLabel() {
				labels[label.GetName()] = label.GetValue()
			}
			assert.Equal(t, "/patients/{id}", labels["route"])
			counts[labels["status_code"]] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"200": 2, "404": 1}, counts)
	n, err := testutil.GatherAndCount(reg, "http_server_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoggingRecordsRequest(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := newInstrumentedRouter(log, prometheus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/patients/404", nil)
	req.Header.Set(HeaderRequestID, "req-9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "req-9", entry.Data["request_id"])
	assert.Equal(t, "/patients/{id}", entry.Data["route"])
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
}
