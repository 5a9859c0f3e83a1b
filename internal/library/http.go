package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the saved-book collection routes. All of them require an
// authenticated identity — enforcement lives in the service layer, so the
// router carries no auth middleware of its own.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.saveBook)
	router.Get("/", handler.listSavedBooks)
	router.Get("/{bookId}", handler.getSavedBook)
	router.Delete("/{bookId}", handler.deleteBook)

	return router
}

// UserRoutes returns the per-user collection routes, mounted under /users.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{userId}/books", handler.listUserBooks)
	return router
}

func (handler *Handler) saveBook(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	var input SaveBookInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Save(request.Context(), identity, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) listSavedBooks(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)

	limit, err := requestutil.QueryInt(request, "limit", pagination.DefaultLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	cursor := request.URL.Query().Get("cursor")

	page, err := handler.service.List(request.Context(), identity, cursor, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) getSavedBook(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)
	bookID := requestutil.Param(request, "bookId")

	book, err := handler.service.Get(request.Context(), identity, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)
	bookID := requestutil.Param(request, "bookId")

	count, err := handler.service.Delete(request.Context(), identity, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Idempotent: a second delete of the same book responds 200 with count 0.
	respond.OK(writer, map[string]int64{"deleted": count})
}

func (handler *Handler) listUserBooks(writer http.ResponseWriter, request *http.Request) {
	identity := requestutil.Identity(request)
	userID := requestutil.Param(request, "userId")

	limit, err := requestutil.QueryInt(request, "limit", pagination.DefaultLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	cursor := request.URL.Query().Get("cursor")

	page, err := handler.service.ListForUser(request.Context(), identity, userID, cursor, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}
