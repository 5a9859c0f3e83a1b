package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public search routes. No authentication required.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.searchBooks)
	return router
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")

	maxResults, err := requestutil.QueryInt(request, "max_results", constants.DefaultSearchResults)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	startIndex, err := requestutil.QueryInt(request, "start_index", 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Search(request.Context(), query, maxResults, startIndex)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}
