package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/catalog"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// --- Cascade payload inputs ---

// CategoryCmpUpsertInput is the bulk payload for the configurable tree.
type CategoryCmpUpsertInput struct {
	Name     string            `json:"name" validate:"required,max=255"`
	Sections []SectionCmpInput `json:"sections" validate:"omitempty,dive"`
}

// SectionCmpInput carries one SectionCmp node; a positive id selects update.
type SectionCmpInput struct {
	ID       *int64            `json:"id" validate:"omitempty,gt=0"`
	Name     string            `json:"name" validate:"required,max=255"`
	ImgURL   *string           `json:"img_url" validate:"omitempty,url,max=2048"`
	Elements []ElementCmpInput `json:"elements" validate:"omitempty,dive"`
}

// ElementCmpInput carries one ElementCmp node. Name is deliberately not
// required: a blank name marks a placeholder row the writer skips.
type ElementCmpInput struct {
	ID      *int64           `json:"id" validate:"omitempty,gt=0"`
	Name    string           `json:"name" validate:"max=255"`
	ImgURL  *string          `json:"img_url" validate:"omitempty,url,max=2048"`
	Options []OptionCmpInput `json:"options" validate:"omitempty,dive"`
}

// OptionCmpInput carries one OptionCmp node with its absolute price.
type OptionCmpInput struct {
	ID     *int64  `json:"id" validate:"omitempty,gt=0"`
	Name   string  `json:"name" validate:"required,max=255"`
	Price  float64 `json:"price" validate:"gte=0"`
	ImgURL *string `json:"img_url" validate:"omitempty,url,max=2048"`
}

// CategoryUpsertInput is the bulk payload for the regular-product tree.
type CategoryUpsertInput struct {
	Name          string         `json:"name" validate:"required,max=255"`
	AllowCreation *bool          `json:"allow_creation"`
	Products      []ProductInput `json:"products" validate:"omitempty,dive"`
}

// ProductInput carries one product node with its owned collections.
type ProductInput struct {
	ID          *int64         `json:"id" validate:"omitempty,gt=0"`
	Name        string         `json:"name" validate:"required,max=255"`
	Value       float64        `json:"value" validate:"gte=0"`
	Quantity    int64          `json:"quantity" validate:"gte=0"`
	Editable    bool           `json:"editable"`
	ImgURL      *string        `json:"img_url" validate:"omitempty,url,max=2048"`
	Description *string        `json:"description" validate:"omitempty"`
	Details     []DetailInput  `json:"details" validate:"omitempty,dive"`
	Sections    []SectionInput `json:"sections" validate:"omitempty,dive"`
}

// DetailInput carries one free-form descriptive field.
type DetailInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty"`
}

// SectionInput carries one per-product option group.
type SectionInput struct {
	ID      *int64        `json:"id" validate:"omitempty,gt=0"`
	Name    string        `json:"name" validate:"required,max=255"`
	Options []OptionInput `json:"options" validate:"omitempty,dive"`
}

// OptionInput carries one option with its price delta.
type OptionInput struct {
	ID    *int64  `json:"id" validate:"omitempty,gt=0"`
	Name  string  `json:"name" validate:"required,max=255"`
	Price float64 `json:"price"`
}

// --- Pure input -> payload mapping functions ---

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func toCategoryCmpPayload(input CategoryCmpUpsertInput) catalog.CategoryCmpPayload {
	payload := catalog.CategoryCmpPayload{Name: input.Name}
	for _, s := range input.Sections {
		section := catalog.SectionCmpPayload{ID: derefID(s.ID), Name: s.Name, ImgURL: s.ImgURL}
		for _, e := range s.Elements {
			element := catalog.ElementCmpPayload{ID: derefID(e.ID), Name: e.Name, ImgURL: e.ImgURL}
			for _, o := range e.Options {
				element.Options = append(element.Options, catalog.OptionCmpPayload{
					ID: derefID(o.ID), Name: o.Name, Price: o.Price, ImgURL: o.ImgURL,
				})
			}
			section.Elements = append(section.Elements, element)
		}
		payload.Sections = append(payload.Sections, section)
	}
	return payload
}

func toCategoryPayload(input CategoryUpsertInput) catalog.CategoryPayload {
	payload := catalog.CategoryPayload{Name: input.Name, AllowCreation: true}
	if input.AllowCreation != nil {
		payload.AllowCreation = *input.AllowCreation
	}
	for _, p := range input.Products {
		product := catalog.ProductPayload{
			ID:          derefID(p.ID),
			Name:        p.Name,
			Value:       p.Value,
			Quantity:    p.Quantity,
			Editable:    p.Editable,
			ImgURL:      p.ImgURL,
			Description: p.Description,
		}
		for _, d := range p.Details {
			product.Details = append(product.Details, catalog.DetailPayload{Name: d.Name, Description: d.Description})
		}
		for _, s := range p.Sections {
			section := catalog.SectionPayload{ID: derefID(s.ID), Name: s.Name}
			for _, o := range s.Options {
				section.Options = append(section.Options, catalog.OptionPayload{
					ID: derefID(o.ID), Name: o.Name, Price: o.Price,
				})
			}
			product.Sections = append(product.Sections, section)
		}
		payload.Products = append(payload.Products, product)
	}
	return payload
}

// queryCategoryID reads the optional ?categoryId= parameter: absent means
// create, present means edit.
func queryCategoryID(r *http.Request) (*int64, error) {
	idStr := r.URL.Query().Get("categoryId")
	if idStr == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.New("invalid categoryId format")
	}
	return &id, nil
}

// --- Category handlers ---

// CategoryCmpUpsertResponse is the persisted configurable subtree.
type CategoryCmpUpsertResponse struct {
	Category *domain.Category    `json:"category"`
	Sections []domain.SectionCmp `json:"sections"`
}

func (h *HTTPHandler) UpsertConfigurableCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryCategoryID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input CategoryCmpUpsertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	category, sections, err := h.writer.UpsertConfigurableCategory(r.Context(), categoryID, toCategoryCmpPayload(input))
	if err != nil {
		log.Printf("ERROR: UpsertConfigurableCategory failed: %v", err)
		respondWithServiceError(w, err, "Failed to persist configurable category")
		return
	}

	code := http.StatusCreated
	if categoryID != nil {
		code = http.StatusOK
	}
	respondWithJSON(w, code, CategoryCmpUpsertResponse{Category: category, Sections: sections})
}

// CategoryUpsertResponse is the persisted regular subtree.
type CategoryUpsertResponse struct {
	Category *domain.Category `json:"category"`
	Products []domain.Product `json:"products"`
}

func (h *HTTPHandler) UpsertRegularCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryCategoryID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input CategoryUpsertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	category, products, err := h.writer.UpsertRegularCategory(r.Context(), categoryID, toCategoryPayload(input))
	if err != nil {
		log.Printf("ERROR: UpsertRegularCategory failed: %v", err)
		respondWithServiceError(w, err, "Failed to persist product category")
		return
	}

	code := http.StatusCreated
	if categoryID != nil {
		code = http.StatusOK
	}
	respondWithJSON(w, code, CategoryUpsertResponse{Category: category, Products: products})
}

// CategoryTreeResponse is a category with its configurable subtree attached
// when the category roots one.
type CategoryTreeResponse struct {
	Category *domain.Category    `json:"category"`
	Sections []domain.SectionCmp `json:"sections,omitempty"`
}

func (h *HTTPHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	category, err := h.categoryStore.GetCategoryByID(r.Context(), categoryID)
	if err != nil {
		log.Printf("ERROR: GetCategoryByID store operation for ID %d failed: %v", categoryID, err)
		respondWithServiceError(w, err, "Failed to retrieve category")
		return
	}

	response := CategoryTreeResponse{Category: category}
	if category.Mode == domain.CategoryModeCmp {
		sections, err := h.categoryStore.GetConfigurableTree(r.Context(), categoryID)
		if err != nil {
			log.Printf("ERROR: GetConfigurableTree for category %d failed: %v", categoryID, err)
			respondWithServiceError(w, err, "Failed to retrieve category tree")
			return
		}
		response.Sections = sections
	}

	respondWithJSON(w, http.StatusOK, response)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	pageStr := r.URL.Query().Get("page")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	if limit > 100 { // Max limit
		limit = 100
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	params := store.ListCategoriesParams{Limit: limit, Offset: offset}
	if modeStr := r.URL.Query().Get("mode"); modeStr != "" {
		mode := domain.CategoryMode(modeStr)
		if mode != domain.CategoryModeRegular && mode != domain.CategoryModeCmp {
			respondWithError(w, http.StatusBadRequest, "Invalid mode value. Allowed: regular, cmp")
			return
		}
		params.Mode = &mode
	}

	categories, totalCount, err := h.categoryStore.ListCategories(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: ListCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	respondWithJSON(w, http.StatusOK, newPaginatedResponse(categories, page, limit, totalCount))
}

func (h *HTTPHandler) ListProductsInCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	products, err := h.productStore.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("ERROR: ListProductsByCategory store operation for ID %d failed: %v", categoryID, err)
		respondWithServiceError(w, err, "Failed to retrieve products in category")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseIDParam(r, "categoryId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	err := h.categoryStore.DeleteCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("ERROR: DeleteCategory store operation for ID %d failed: %v", categoryID, err)
		respondWithServiceError(w, err, "Failed to delete category")
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}
