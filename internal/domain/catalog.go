package domain

import "time"

// CategoryMode tells which of the two catalog trees a category roots.
// A category holds either regular products or a configurable (CMP) tree,
// never both; the mode is assigned on creation and enforced on every
// cascade write against the category.
type CategoryMode string

const (
	// CategoryModeRegular roots Category -> Product -> Section -> Option.
	CategoryModeRegular CategoryMode = "regular"
	// CategoryModeCmp roots Category -> SectionCmp -> ElementCmp -> OptionCmp.
	CategoryModeCmp CategoryMode = "cmp"
)

// Category is the root of one of the two catalog trees.
type Category struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Mode          CategoryMode `json:"mode"`
	AllowCreation bool         `json:"allow_creation"` // whether new regular products may still be attached
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SectionCmp is a presentation group inside a configurable category,
// e.g. "Seat", "Backrest". It owns the elements the customer configures.
type SectionCmp struct {
	ID         int64        `json:"id"`
	CategoryID int64        `json:"category_id"`
	Name       string       `json:"name"`
	ImgURL     *string      `json:"img_url,omitempty"`
	Elements   []ElementCmp `json:"elements,omitempty"`
}

// ElementCmp is one configuration axis (fabric, color, size) under a
// SectionCmp. An element that owns at least one option is a mandatory
// selection point when a configuration is resolved.
type ElementCmp struct {
	ID           int64       `json:"id"`
	SectionCmpID int64       `json:"section_cmp_id"`
	Name         string      `json:"name"`
	ImgURL       *string     `json:"img_url,omitempty"`
	Options      []OptionCmp `json:"options,omitempty"`
}

// Mandatory reports whether a resolved configuration must carry a choice
// for this element.
func (e *ElementCmp) Mandatory() bool {
	return len(e.Options) > 0
}

// OptionCmp is a terminal priced choice for an element. The price is
// absolute, not a delta on some base value.
type OptionCmp struct {
	ID           int64   `json:"id"`
	ElementCmpID int64   `json:"element_cmp_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImgURL       *string `json:"img_url,omitempty"`
}
