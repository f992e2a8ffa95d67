// Package order resolves customer configurations and assembles priced
// orders from mixed regular/configurable line items.
package order

import (
	"context"
	"fmt"
	"sort"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// ResolvedConfiguration is the outcome of validating a selection set
// against a configurable category: the summed absolute option prices and
// the pinned choices in element-id order.
type ResolvedConfiguration struct {
	CategoryID int64
	TotalDelta float64
	Chosen     []domain.ChosenOption
}

// Resolver validates customer option choices against the element
// requirement set of a configurable category.
type Resolver struct {
	categories store.CategoryStorer
}

// NewResolver creates a Resolver reading from the catalog store.
func NewResolver(categories store.CategoryStorer) *Resolver {
	return &Resolver{categories: categories}
}

// Resolve checks the selections (ElementCmp id -> OptionCmp id) against the
// category's subtree and prices the configuration. It fails fast with:
// store.ErrCategoryNotFound / store.ErrCategoryModeMismatch for a bad
// target, store.ErrElementCmpNotFound for a selection keyed outside the
// subtree, *MissingSelectionError for an uncovered mandatory element and
// *InvalidSelectionError for any supplied option that does not belong to
// its element, mandatory or not.
// The result is deterministic for any iteration order of selections.
func (r *Resolver) Resolve(ctx context.Context, categoryID int64, selections map[int64]int64) (*ResolvedConfiguration, error) {
	sections, err := r.categories.GetConfigurableTree(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	elements := make(map[int64]*domain.ElementCmp)
	orderedIDs := make([]int64, 0)
	for si := range sections {
		for ei := range sections[si].Elements {
			element := &sections[si].Elements[ei]
			elements[element.ID] = element
			orderedIDs = append(orderedIDs, element.ID)
		}
	}
	sort.Slice(orderedIDs, func(i, j int) bool { return orderedIDs[i] < orderedIDs[j] })

	// Selections must all target elements under this subtree.
	for elementID := range selections {
		if _, ok := elements[elementID]; !ok {
			return nil, fmt.Errorf("element %d: %w", elementID, store.ErrElementCmpNotFound)
		}
	}

	resolved := &ResolvedConfiguration{CategoryID: categoryID}
	for _, elementID := range orderedIDs {
		element := elements[elementID]
		optionID, ok := selections[elementID]
		if !ok {
			if element.Mandatory() {
				return nil, &MissingSelectionError{ElementCmpID: element.ID, ElementName: element.Name}
			}
			continue
		}
		// Every supplied selection is checked for option ownership, even on
		// an element with no mandatory choice.
		var chosen *domain.OptionCmp
		for oi := range element.Options {
			if element.Options[oi].ID == optionID {
				chosen = &element.Options[oi]
				break
			}
		}
		if chosen == nil {
			return nil, &InvalidSelectionError{ElementCmpID: element.ID, OptionCmpID: optionID}
		}
		resolved.TotalDelta += chosen.Price
		resolved.Chosen = append(resolved.Chosen, domain.ChosenOption{
			ElementCmpID: element.ID,
			ElementName:  element.Name,
			OptionCmpID:  chosen.ID,
			OptionName:   chosen.Name,
			Price:        chosen.Price,
		})
	}
	return resolved, nil
}
