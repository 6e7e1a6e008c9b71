package web

import (
	"net/http"
	"strconv"

	"bookshelf/internal/catalog"
	"bookshelf/internal/httpx"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	book, err := s.books.LatestBook(r.Context())
	switch catalog.OutcomeOf(err) {
	case catalog.OutcomeNotFound:
		httpx.Text(w, http.StatusNotFound, "Books not found")
		return
	case catalog.OutcomeUpstreamError:
		httpx.Text(w, http.StatusInternalServerError, "Error fetching books from API")
		return
	}

	s.html(w, r, "home", map[string]any{
		"PageTitle": "Latest book",
		"Book":      book,
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, ok := parseID(p.ByName("id"))
	if !ok {
		httpx.Text(w, http.StatusNotFound, "Not Found")
		return
	}

	book, err := s.books.BookDetails(r.Context(), id)
	switch catalog.OutcomeOf(err) {
	case catalog.OutcomeNotFound:
		httpx.Text(w, http.StatusNotFound, "Book not found")
		return
	case catalog.OutcomeUpstreamError:
		httpx.Text(w, http.StatusInternalServerError, "Error fetching book from API")
		return
	}

	s.html(w, r, "details", map[string]any{
		"PageTitle": book.Title,
		"Book":      book,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	books, err := s.books.ListBooks(r.Context())
	if err != nil {
		httpx.Text(w, http.StatusInternalServerError, "Error fetching books from API")
		return
	}

	s.html(w, r, "catalog", map[string]any{
		"PageTitle": "Catalog",
		"Books":     books,
	})
}

func (s *Server) html(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := s.render.HTML(w, http.StatusOK, name, data); err != nil {
		s.rec.RecordError(r.Context(), "rendering page failed", err, zap.String("template", name))
		s.log.Error("render", zap.String("template", name), zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// parseID accepts the same ids as the book routes of the API: non-negative
// decimal integers without a sign.
func parseID(s string) (int, bool) {
	id, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(id), true
}
