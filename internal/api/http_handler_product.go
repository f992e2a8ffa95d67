package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/catalog"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// --- Product handlers ---

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	limit, err := strconv.Atoi(qParams.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	params := store.ListProductsParams{Limit: limit, Offset: offset}

	if q := qParams.Get("q"); q != "" {
		params.SearchQuery = &q
	}
	if idStr := qParams.Get("category_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
			params.CategoryID = &id
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid category_id format")
			return
		}
	}
	if idStr := qParams.Get("tag_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
			params.TagID = &id
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid tag_id format")
			return
		}
	}
	if availStr := qParams.Get("available"); availStr != "" {
		if b, err := strconv.ParseBool(availStr); err == nil {
			params.Available = &b
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid available value: must be true or false")
			return
		}
	}

	products, totalCount, err := h.productStore.ListProducts(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	respondWithJSON(w, http.StatusOK, newPaginatedResponse(products, page, limit, totalCount))
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.productStore.GetProductTree(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: GetProductTree store operation for ID %d failed: %v", productID, err)
		respondWithServiceError(w, err, "Failed to retrieve product")
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// ProductUpdateInput defines the expected input for updating a product.
type ProductUpdateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Value       float64 `json:"value" validate:"gte=0"`
	Quantity    int64   `json:"quantity" validate:"gte=0"`
	Editable    *bool   `json:"editable"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,gt=0"`
	ImgURL      *string `json:"img_url" validate:"omitempty,url,max=2048"`
	Description *string `json:"description" validate:"omitempty"`
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input ProductUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// Existence check first, and the snapshot feeds both the editable guard
	// and the restock transition below.
	existing, err := h.productStore.GetProductByID(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: Product for update (ID %d) not found: %v", productID, err)
		respondWithServiceError(w, err, "Error checking product existence")
		return
	}

	// Business rule: a product locked as non-editable rejects field updates.
	if !existing.Editable {
		respondWithError(w, http.StatusConflict, "Product is not editable")
		return
	}

	editable := existing.Editable
	if input.Editable != nil {
		editable = *input.Editable
	}
	categoryID := existing.CategoryID
	if input.CategoryID != nil {
		categoryID = input.CategoryID
	}

	updated, err := h.productStore.UpdateProduct(r.Context(), &domain.Product{
		ID:          productID,
		Name:        input.Name,
		Value:       input.Value,
		Quantity:    input.Quantity,
		Editable:    editable,
		CategoryID:  categoryID,
		ImgURL:      input.ImgURL,
		Description: input.Description,
	})
	if err != nil {
		log.Printf("ERROR: UpdateProduct store operation for ID %d failed: %v", productID, err)
		respondWithServiceError(w, err, "Failed to update product")
		return
	}

	if existing.Quantity == 0 && updated.Quantity > 0 {
		h.notifyWaiters(updated)
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// notifyWaiters tells the users waiting on the product that it is back in
// stock. Fire-and-forget: the request that triggered the restock never
// fails because of the notification collaborator.
func (h *HTTPHandler) notifyWaiters(product *domain.Product) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		recipients, err := h.productStore.ListWaiters(ctx, product.ID)
		if err != nil {
			log.Printf("WARN: Failed to list waiters for product %d: %v", product.ID, err)
			return
		}
		if len(recipients) == 0 {
			return
		}
		productURL := fmt.Sprintf("%s/products/%d", h.shopBaseURL, product.ID)
		if err := h.notifier.ProductBackInStock(ctx, recipients, product.Name, productURL); err != nil {
			log.Printf("WARN: Back-in-stock notification for product %d failed: %v", product.ID, err)
			return
		}
		if err := h.productStore.ClearWaiters(ctx, product.ID); err != nil {
			log.Printf("WARN: Failed to clear waiters for product %d: %v", product.ID, err)
		}
	}()
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	err := h.associations.DeleteProduct(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: DeleteProduct operation for ID %d failed: %v", productID, err)
		respondWithServiceError(w, err, "Failed to delete product")
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Association handlers ---

func (h *HTTPHandler) ListProductTags(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	tags, err := h.associations.ListTags(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: ListTags operation for product %d failed: %v", productID, err)
		respondWithServiceError(w, err, "Failed to retrieve product tags")
		return
	}
	respondWithJSON(w, http.StatusOK, tags)
}

func (h *HTTPHandler) AssignTag(w http.ResponseWriter, r *http.Request) {
	productID, okP := parseIDParam(r, "productId")
	tagID, okT := parseIDParam(r, "tagId")
	if !okP || !okT {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.associations.AssignTag(r.Context(), productID, tagID); err != nil {
		log.Printf("ERROR: AssignTag (product %d, tag %d) failed: %v", productID, tagID, err)
		respondWithServiceError(w, err, "Failed to assign tag")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	productID, okP := parseIDParam(r, "productId")
	tagID, okT := parseIDParam(r, "tagId")
	if !okP || !okT {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.associations.RemoveTag(r.Context(), productID, tagID); err != nil {
		log.Printf("ERROR: RemoveTag (product %d, tag %d) failed: %v", productID, tagID, err)
		respondWithServiceError(w, err, "Failed to remove tag")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) AssignMaterial(w http.ResponseWriter, r *http.Request) {
	productID, okP := parseIDParam(r, "productId")
	materialID, okM := parseIDParam(r, "materialId")
	if !okP || !okM {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.associations.AssignMaterial(r.Context(), productID, materialID); err != nil {
		log.Printf("ERROR: AssignMaterial (product %d, material %d) failed: %v", productID, materialID, err)
		respondWithServiceError(w, err, "Failed to assign material")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) RemoveMaterial(w http.ResponseWriter, r *http.Request) {
	productID, okP := parseIDParam(r, "productId")
	materialID, okM := parseIDParam(r, "materialId")
	if !okP || !okM {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.associations.RemoveMaterial(r.Context(), productID, materialID); err != nil {
		log.Printf("ERROR: RemoveMaterial (product %d, material %d) failed: %v", productID, materialID, err)
		respondWithServiceError(w, err, "Failed to remove material")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) AssignDetail(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input DetailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	detail, err := h.associations.AssignDetail(r.Context(), productID, catalog.DetailPayload{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		log.Printf("ERROR: AssignDetail for product %d failed: %v", productID, err)
		respondWithServiceError(w, err, "Failed to create detail")
		return
	}
	respondWithJSON(w, http.StatusCreated, detail)
}

func (h *HTTPHandler) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	productID, okP := parseIDParam(r, "productId")
	detailID, okD := parseIDParam(r, "detailId")
	if !okP || !okD {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var input DetailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	detail, err := h.associations.UpdateDetail(r.Context(), productID, detailID, catalog.DetailPayload{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		log.Printf("ERROR: UpdateDetail %d for product %d failed: %v", detailID, productID, err)
		respondWithServiceError(w, err, "Failed to update detail")
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

func (h *HTTPHandler) RemoveDetail(w http.ResponseWriter, r *http.Request) {
	productID, okP := parseIDParam(r, "productId")
	detailID, okD := parseIDParam(r, "detailId")
	if !okP || !okD {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.associations.RemoveDetail(r.Context(), productID, detailID); err != nil {
		log.Printf("ERROR: RemoveDetail %d for product %d failed: %v", detailID, productID, err)
		respondWithServiceError(w, err, "Failed to remove detail")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// WaiterInput registers an email to be told when the product restocks.
type WaiterInput struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

func (h *HTTPHandler) AddWaiter(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input WaiterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.productStore.AddWaiter(r.Context(), productID, input.Email); err != nil {
		log.Printf("ERROR: AddWaiter for product %d failed: %v", productID, err)
		respondWithServiceError(w, err, "Failed to register interest")
		return
	}
	respondWithJSON(w, http.StatusCreated, nil)
}
