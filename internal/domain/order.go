package domain

import "time"

// Order is created once, atomically, from a fully resolved request. Total
// is a derived value computed by the assembler, never accepted as input.
type Order struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"` // opaque external reference, assigned at assembly
	Address     string    `json:"address"`
	ShipmentFee float64   `json:"shipment_fee"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`

	Products       []OrderProductLine `json:"products,omitempty"`
	Configurations []OrderCmpLine     `json:"configurations,omitempty"`
}

// OrderProductLine is a priced regular-product line. Name and unit value are
// copied from the product at assembly time so the order survives later
// catalog edits.
type OrderProductLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitValue float64 `json:"unit_value"`
	Quantity  int64   `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderCmpLine is a fully resolved configuration of a configurable category.
type OrderCmpLine struct {
	ID         int64          `json:"id"`
	CategoryID int64          `json:"category_id"`
	Subtotal   float64        `json:"subtotal"`
	Choices    []ChosenOption `json:"choices"`
}

// ChosenOption pins one option choice for one element, with the names and
// price captured at resolution time.
type ChosenOption struct {
	ElementCmpID int64   `json:"element_cmp_id"`
	ElementName  string  `json:"element_name"`
	OptionCmpID  int64   `json:"option_cmp_id"`
	OptionName   string  `json:"option_name"`
	Price        float64 `json:"price"`
}
