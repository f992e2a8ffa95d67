package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/catalog"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/notify"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/order"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	writer        *catalog.Writer
	associations  *catalog.Associations
	assembler     *order.Assembler
	categoryStore store.CategoryStorer
	productStore  store.ProductStorer
	notifier      notify.Notifier
	shopBaseURL   string
	validate      *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(
	writer *catalog.Writer,
	associations *catalog.Associations,
	assembler *order.Assembler,
	cs store.CategoryStorer,
	ps store.ProductStorer,
	notifier notify.Notifier,
	shopBaseURL string,
) *HTTPHandler {
	return &HTTPHandler{
		writer:        writer,
		associations:  associations,
		assembler:     assembler,
		categoryStore: cs,
		productStore:  ps,
		notifier:      notifier,
		shopBaseURL:   shopBaseURL,
		validate:      validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// respondWithServiceError maps a catalog/order/store error to the client
// status the presentation boundary owes the caller: not-found, conflict or
// unprocessable. Unknown errors become a 500 with the fallback message.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	var (
		missing    *order.MissingSelectionError
		invalid    *order.InvalidSelectionError
		outOfStock *order.OutOfStockError
	)
	switch {
	case errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrSectionCmpNotFound),
		errors.Is(err, store.ErrElementCmpNotFound),
		errors.Is(err, store.ErrOptionCmpNotFound),
		errors.Is(err, store.ErrSectionNotFound),
		errors.Is(err, store.ErrOptionNotFound),
		errors.Is(err, store.ErrDetailNotFound),
		errors.Is(err, store.ErrTagNotFound),
		errors.Is(err, store.ErrMaterialNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrTagAlreadyAssigned),
		errors.Is(err, store.ErrMaterialAlreadyAssigned),
		errors.Is(err, store.ErrWaiterAlreadyRegistered),
		errors.Is(err, store.ErrCategoryModeMismatch),
		errors.Is(err, store.ErrOutOfStock),
		errors.Is(err, catalog.ErrCreationNotAllowed):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &outOfStock):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &missing), errors.As(err, &invalid):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// PaginationInfo matches the pagination envelope of the list endpoints.
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PaginatedResponse wraps list data with its pagination envelope.
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

func newPaginatedResponse(data interface{}, page, limit, totalCount int) PaginatedResponse {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return PaginatedResponse{
		Data: data,
		Pagination: PaginationInfo{
			Page:       page,
			Limit:      limit,
			TotalItems: totalCount,
			TotalPages: totalPages,
		},
	}
}

// parseIDParam extracts a positive numeric id from the route.
func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		// Bulk cascade endpoints: categoryId absent => create, present => edit.
		r.Put("/full-cmp", h.UpsertConfigurableCategory)
		r.Put("/full-product", h.UpsertRegularCategory)
		r.Route("/{categoryId}", func(r chi.Router) {
			r.Get("/", h.GetCategoryByID)
			r.Get("/products", h.ListProductsInCategory)
			r.Delete("/", h.DeleteCategory)
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", h.GetProductByID)
			r.Put("/", h.UpdateProduct)
			r.Delete("/", h.DeleteProduct)

			r.Get("/tags", h.ListProductTags)
			r.Post("/tags/{tagId}", h.AssignTag)
			r.Delete("/tags/{tagId}", h.RemoveTag)

			r.Post("/materials/{materialId}", h.AssignMaterial)
			r.Delete("/materials/{materialId}", h.RemoveMaterial)

			r.Post("/details", h.AssignDetail)
			r.Put("/details/{detailId}", h.UpdateDetail)
			r.Delete("/details/{detailId}", h.RemoveDetail)

			r.Post("/waiters", h.AddWaiter)
		})
	})

	r.Post("/api/v1/orders", h.PlaceOrder)
}
