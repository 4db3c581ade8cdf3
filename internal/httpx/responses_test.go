package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()

	JSONMessage(w, "Book created successfully")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type application/json")
	}

	var response MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Message != "Book created successfully" {
		t.Errorf("Expected message to round-trip, got %q", response.Message)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/add", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	details := []ErrorDetail{
		{Field: "title", Message: "title is required"},
	}

	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response struct {
		Success bool              `json:"success"`
		Error   ErrorResponseBody `json:"error"`
		Meta    map[string]string `json:"meta"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Success {
		t.Error("Expected success to be false")
	}
	if response.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected error code VALIDATION_ERROR, got %s", response.Error.Code)
	}
	if len(response.Error.Details) != 1 {
		t.Errorf("Expected 1 error detail, got %d", len(response.Error.Details))
	}
	if response.Meta["request_id"] != "req-123" {
		t.Errorf("Expected request_id in meta, got %v", response.Meta)
	}
}

func TestJSONError_NoRequestID(t *testing.T) {
	w := httptest.NewRecorder()

	JSONError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "NOT_FOUND", "book not found", nil)

	var raw map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := raw["meta"]; ok {
		t.Error("Expected meta to be omitted without a request id")
	}
}
