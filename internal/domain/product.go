package domain

import "time"

// Product is a fixed (non-configurable) purchasable item.
// The json tags correspond to the fields expected in API responses/requests.
type Product struct {
	ID          int64     `json:"id"`
	CategoryID  *int64    `json:"category_id,omitempty"` // Pointer for nullable column; a product may be uncategorized
	Name        string    `json:"name"`
	Value       float64   `json:"value"` // Base price. For currency, a dedicated decimal type would be needed in production for precision
	Quantity    int64     `json:"quantity"`
	Editable    bool      `json:"editable"`
	ImgURL      *string   `json:"img_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owned sub-collections, populated on tree fetches only.
	Details  []Detail  `json:"details,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// Available is derived, never stored: a product is available while stocked.
func (p *Product) Available() bool {
	return p.Quantity > 0
}

// Detail is a free-form descriptive field exclusively owned by a product
// (e.g. "Weight: the X chair is light at only 4 kg").
type Detail struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Section is a per-product option group on a regular product.
type Section struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	Name      string   `json:"name"`
	Options   []Option `json:"options,omitempty"`
}

// Option is a selectable value inside a Section. Its price is a delta
// applied on top of the product's base value.
type Option struct {
	ID        int64   `json:"id"`
	SectionID int64   `json:"section_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// Tag is shared across products (office, kitchen, living room...). The
// product relation is many-to-many; removing a product never deletes a tag.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Material composes the bulk of a piece of furniture (a wood type, metal...).
// Shared across products exactly like tags.
type Material struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
