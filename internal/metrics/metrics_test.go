package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestIncBookOperation(t *testing.T) {
	before := testutil.ToFloat64(bookOperations.WithLabelValues("create", "conflict"))
	IncBookOperation("create", "conflict")
	after := testutil.ToFloat64(bookOperations.WithLabelValues("create", "conflict"))
	assert.Equal(t, before+1, after)
}

func TestSetBooks(t *testing.T) {
	SetBooks(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(booksGauge))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "GET /books", "200"))
	ObserveRequest(http.MethodGet, "GET /books", http.StatusOK, 15*time.Millisecond)
	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "GET /books", "200"))
	assert.Equal(t, before+1, after)
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	Register()
	IncBookOperation("list", "ok")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "book_catalog_book_operations_total")
}
