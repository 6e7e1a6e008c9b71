package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{service: service, log: log}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("POST /book/add", h.Create)
	mux.HandleFunc("PUT /books/update/{id}", h.Update)
	mux.HandleFunc("DELETE /books/delete/{id}", h.Delete)
}

type validationErrorResponse struct {
	Error     string            `json:"error"`
	Details   []ValidationError `json:"details"`
	RequestID string            `json:"request_id,omitempty"`
}

// List handles GET /books. The body is a bare JSON array.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list books", err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "book not found")
		return
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "book not found")
			return
		}
		h.internalError(w, r, "get book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

// Create handles POST /book/add
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := ValidateStruct(req); len(errs) > 0 {
		httpx.JSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:     "invalid input",
			Details:   errs,
			RequestID: httpx.RequestIDFrom(r),
		})
		return
	}

	book, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.internalError(w, r, "create book", err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/books/%d", book.ID))
	httpx.JSON(w, http.StatusCreated, book)
}

// Update handles PUT /books/update/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "book not found")
		return
	}

	var req UpdateBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs := ValidateStruct(req); len(errs) > 0 {
		httpx.JSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:     "invalid input",
			Details:   errs,
			RequestID: httpx.RequestIDFrom(r),
		})
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "book not found")
			return
		}
		h.internalError(w, r, "update book", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /books/delete/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "book not found")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "book not found")
			return
		}
		h.internalError(w, r, "delete book", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error(op, zap.Error(err), zap.String("request_id", httpx.RequestIDFrom(r)))
	httpx.JSONError(w, r, http.StatusInternalServerError, "internal server error")
}

// pathID reads the {id} segment. Ids are unsigned decimal integers that fit
// in an int32, the same ids the web pages accept.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 31)
	if err != nil {
		return 0, false
	}
	return int(id), true
}
