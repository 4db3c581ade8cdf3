package book

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Welcome handles GET /
func (h *HTTPHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	httpx.JSONMessage(w, "Welcome to the Book System!")
}

// List handles GET /books
// @Summary List books
// @Description Page through the catalog; page skips page-1 rows
// @Tags books
// @Produce json
// @Security BasicAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Results per page" default(10)
// @Success 200 {object} Page
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := intParam(query.Get("page"), DefaultPage)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: "page", Message: "page must be an integer"}})
		return
	}
	limit, err := intParam(query.Get("limit"), DefaultLimit)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input",
			[]httpx.ErrorDetail{{Field: "limit", Message: "limit must be an integer"}})
		return
	}

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// Create handles POST /add
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param book body Input true "Book"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /add [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Create(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, "Book created successfully")
}

// Update handles PUT /update/{id}
// @Summary Replace a book
// @Tags books
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Book ID"
// @Param book body Input true "Book"
// @Success 200 {object} httpx.MessageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /update/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, "Book updated successfully")
}

// Delete handles DELETE /delete/{id}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BasicAuth
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /delete/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, "Book deleted successfully")
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book ID", nil)
		return 0, false
	}
	return id, true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return Input{}, false
	}
	if validationErrors := httpx.ValidateStruct(in); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return Input{}, false
	}
	return in, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidPage):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", ErrInvalidPage.Error(), nil)
	case errors.Is(err, ErrIncompleteInput):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", nil)
	case errors.Is(err, ErrNoBooks):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", ErrNoBooks.Error(), nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", ErrNotFound.Error(), nil)
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONError(w, r, http.StatusBadRequest, "CONFLICT", ErrAlreadyExists.Error(), nil)
	default:
		log.Printf("book handler error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
