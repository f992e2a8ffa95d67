// Package catalog implements the bulk cascade writes that keep the two
// catalog trees consistent, and the association management for product
// sub-collections.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// Business-rule errors surfaced by the writer.
var (
	ErrCreationNotAllowed = errors.New("catalog: category does not allow attaching new products")
)

// CategoryCmpPayload is the bulk create/edit shape for a configurable
// category and its nested section/element/option subtree. A nested id
// selects update of that node, a zero id selects create. Nodes absent from
// the payload are left untouched (no delete-by-omission).
type CategoryCmpPayload struct {
	Name     string
	Sections []SectionCmpPayload
}

// SectionCmpPayload describes one SectionCmp and its candidate elements.
type SectionCmpPayload struct {
	ID       int64
	Name     string
	ImgURL   *string
	Elements []ElementCmpPayload
}

// ElementCmpPayload describes one ElementCmp. An empty/blank name marks a
// placeholder row the writer skips entirely.
type ElementCmpPayload struct {
	ID      int64
	Name    string
	ImgURL  *string
	Options []OptionCmpPayload
}

// OptionCmpPayload describes one OptionCmp with its absolute price.
type OptionCmpPayload struct {
	ID     int64
	Name   string
	Price  float64
	ImgURL *string
}

// CategoryPayload is the bulk create/edit shape for a regular-product
// category: Category -> Product -> Section -> Option plus owned details.
type CategoryPayload struct {
	Name          string
	AllowCreation bool
	Products      []ProductPayload
}

// ProductPayload describes one regular product and its owned collections.
type ProductPayload struct {
	ID          int64
	Name        string
	Value       float64
	Quantity    int64
	Editable    bool
	ImgURL      *string
	Description *string
	Details     []DetailPayload
	Sections    []SectionPayload
}

// DetailPayload describes one free-form descriptive field. The payload set
// supersedes the product's previous detail set wholesale.
type DetailPayload struct {
	Name        string
	Description *string
}

// SectionPayload describes one per-product option group.
type SectionPayload struct {
	ID      int64
	Name    string
	Options []OptionPayload
}

// OptionPayload describes one option with its price delta.
type OptionPayload struct {
	ID    int64
	Name  string
	Price float64
}

// Writer persists whole catalog subtrees as single units of work, deciding
// create-vs-update per node and stamping parent ids top-down.
type Writer struct {
	txRunner store.CatalogTxRunner
}

// NewWriter creates a cascade Writer on top of a transactional store.
func NewWriter(txRunner store.CatalogTxRunner) *Writer {
	return &Writer{txRunner: txRunner}
}

// UpsertConfigurableCategory creates (categoryID nil) or edits (categoryID
// set) a configurable category together with its supplied subtree, in one
// transaction. Every returned SectionCmp carries the category's id and its
// own persisted elements; elements bind only to the section that supplied
// them in the payload. Blank-name elements are skipped, never persisted.
func (w *Writer) UpsertConfigurableCategory(ctx context.Context, categoryID *int64, payload CategoryCmpPayload) (*domain.Category, []domain.SectionCmp, error) {
	var (
		category *domain.Category
		sections []domain.SectionCmp
	)
	err := w.txRunner.RunCatalogTx(ctx, func(tx store.CatalogTx) error {
		var err error
		category, err = w.resolveCategory(ctx, tx, categoryID, payload.Name, domain.CategoryModeCmp, nil)
		if err != nil {
			return err
		}

		// Parent-first: persist sections so they receive ids, then hang each
		// section's own elements and options beneath it.
		sections = make([]domain.SectionCmp, 0, len(payload.Sections))
		for _, sp := range payload.Sections {
			section, err := tx.UpsertSectionCmp(ctx, &domain.SectionCmp{
				ID:         sp.ID,
				CategoryID: category.ID,
				Name:       sp.Name,
				ImgURL:     sp.ImgURL,
			})
			if err != nil {
				return err
			}
			for _, ep := range sp.Elements {
				if strings.TrimSpace(ep.Name) == "" {
					continue // placeholder row
				}
				element, err := tx.UpsertElementCmp(ctx, &domain.ElementCmp{
					ID:           ep.ID,
					SectionCmpID: section.ID,
					Name:         ep.Name,
					ImgURL:       ep.ImgURL,
				})
				if err != nil {
					return err
				}
				for _, op := range ep.Options {
					option, err := tx.UpsertOptionCmp(ctx, &domain.OptionCmp{
						ID:           op.ID,
						ElementCmpID: element.ID,
						Name:         op.Name,
						Price:        op.Price,
						ImgURL:       op.ImgURL,
					})
					if err != nil {
						return err
					}
					element.Options = append(element.Options, *option)
				}
				section.Elements = append(section.Elements, *element)
			}
			sections = append(sections, *section)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return category, sections, nil
}

// UpsertRegularCategory is the symmetric two-phase cascade for the regular
// tree: Category -> Product -> Section -> Option, with each product's detail
// set replaced wholesale from the payload. When editing a category whose
// allow_creation flag is off, payload entries without an id are rejected
// before anything is written.
func (w *Writer) UpsertRegularCategory(ctx context.Context, categoryID *int64, payload CategoryPayload) (*domain.Category, []domain.Product, error) {
	var (
		category *domain.Category
		products []domain.Product
	)
	err := w.txRunner.RunCatalogTx(ctx, func(tx store.CatalogTx) error {
		var err error
		category, err = w.resolveCategory(ctx, tx, categoryID, payload.Name, domain.CategoryModeRegular, &payload.AllowCreation)
		if err != nil {
			return err
		}
		if categoryID != nil && !category.AllowCreation {
			for _, pp := range payload.Products {
				if pp.ID == 0 {
					return ErrCreationNotAllowed
				}
			}
		}

		products = make([]domain.Product, 0, len(payload.Products))
		for _, pp := range payload.Products {
			product, err := tx.UpsertProduct(ctx, &domain.Product{
				ID:          pp.ID,
				CategoryID:  &category.ID,
				Name:        pp.Name,
				Value:       pp.Value,
				Quantity:    pp.Quantity,
				Editable:    pp.Editable,
				ImgURL:      pp.ImgURL,
				Description: pp.Description,
			})
			if err != nil {
				return err
			}

			if pp.Details != nil {
				details := make([]domain.Detail, 0, len(pp.Details))
				for _, dp := range pp.Details {
					details = append(details, domain.Detail{Name: dp.Name, Description: dp.Description})
				}
				product.Details, err = tx.ReplaceDetails(ctx, product.ID, details)
				if err != nil {
					return err
				}
			}

			for _, sp := range pp.Sections {
				section, err := tx.UpsertSection(ctx, &domain.Section{
					ID:        sp.ID,
					ProductID: product.ID,
					Name:      sp.Name,
				})
				if err != nil {
					return err
				}
				for _, op := range sp.Options {
					option, err := tx.UpsertOption(ctx, &domain.Option{
						ID:        op.ID,
						SectionID: section.ID,
						Name:      op.Name,
						Price:     op.Price,
					})
					if err != nil {
						return err
					}
					section.Options = append(section.Options, *option)
				}
				product.Sections = append(product.Sections, *section)
			}
			products = append(products, *product)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

// resolveCategory creates the root category or fetches the existing one,
// enforcing that the existing category is operated in the expected mode.
// On edit, the supplied name supersedes the stored one (full-replace of
// editable fields); allowCreation is applied only when the payload carries
// the flag (the configurable payload does not).
func (w *Writer) resolveCategory(ctx context.Context, tx store.CatalogTx, categoryID *int64, name string, mode domain.CategoryMode, allowCreation *bool) (*domain.Category, error) {
	if categoryID == nil {
		created := &domain.Category{Name: name, Mode: mode, AllowCreation: true}
		if allowCreation != nil {
			created.AllowCreation = *allowCreation
		}
		return tx.CreateCategory(ctx, created)
	}
	existing, err := tx.GetCategoryByID(ctx, *categoryID)
	if err != nil {
		return nil, err
	}
	if existing.Mode != mode {
		return nil, store.ErrCategoryModeMismatch
	}
	existing.Name = name
	if allowCreation != nil {
		existing.AllowCreation = *allowCreation
	}
	return tx.UpdateCategory(ctx, existing)
}
