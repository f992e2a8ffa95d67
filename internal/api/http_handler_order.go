package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/order"
)

// OrderProductLineInput is a stocked product line in an order request.
type OrderProductLineInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// OrderCmpLineInput is a configured-category line: the chosen option per
// element, keyed by element id.
type OrderCmpLineInput struct {
	CategoryID int64           `json:"category_id" validate:"required,gt=0"`
	Selections map[int64]int64 `json:"selections" validate:"required"`
}

// OrderCreateInput defines the expected input for placing an order.
type OrderCreateInput struct {
	Products    []OrderProductLineInput `json:"products" validate:"dive"`
	Cmps        []OrderCmpLineInput     `json:"cmps" validate:"dive"`
	Address     string                  `json:"address" validate:"required,max=1024"`
	ShipmentFee float64                 `json:"shipment_fee"`
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input OrderCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if len(input.Products) == 0 && len(input.Cmps) == 0 {
		respondWithError(w, http.StatusBadRequest, "Order must contain at least one product or configuration")
		return
	}

	req := order.Request{
		Address:     input.Address,
		ShipmentFee: input.ShipmentFee,
	}
	for _, p := range input.Products {
		req.Products = append(req.Products, order.ProductLine{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	for _, c := range input.Cmps {
		req.Cmps = append(req.Cmps, order.CmpLine{CategoryID: c.CategoryID, Selections: c.Selections})
	}

	placed, err := h.assembler.Place(r.Context(), req)
	if err != nil {
		log.Printf("ERROR: PlaceOrder failed: %v", err)
		respondWithServiceError(w, err, "Failed to place order")
		return
	}

	log.Printf("INFO: Order %s placed, total %.2f", placed.Number, placed.Total)
	respondWithJSON(w, http.StatusCreated, placed)
}
