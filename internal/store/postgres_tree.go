package store

import (
	"context"
	"fmt"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
)

// GetConfigurableTree loads the whole SectionCmp -> ElementCmp -> OptionCmp
// subtree of a configurable category in three queries and stitches it
// together in memory. Children come back ordered by id so resolution and
// responses are deterministic.
func (s *PostgresStore) GetConfigurableTree(ctx context.Context, categoryID int64) ([]domain.SectionCmp, error) {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.Mode != domain.CategoryModeCmp {
		return nil, ErrCategoryModeMismatch
	}

	sectionQuery := `
		SELECT section_cmp_id, category_id, name, img_url
		FROM shop.section_cmps
		WHERE category_id = $1
		ORDER BY section_cmp_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, sectionQuery, categoryID)
	if err != nil {
		return nil, fmt.Errorf("store: GetConfigurableTree failed to query sections: %w", err)
	}
	sections := []domain.SectionCmp{}
	sectionIndex := map[int64]int{}
	for rows.Next() {
		var sc domain.SectionCmp
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.ImgURL); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: GetConfigurableTree failed to scan section row: %w", err)
		}
		sectionIndex[sc.ID] = len(sections)
		sections = append(sections, sc)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("store: GetConfigurableTree section iteration error: %w", err)
	}
	rows.Close()

	if len(sections) == 0 {
		return sections, nil
	}

	elementQuery := `
		SELECT e.element_cmp_id, e.section_cmp_id, e.name, e.img_url
		FROM shop.element_cmps e
		JOIN shop.section_cmps s ON s.section_cmp_id = e.section_cmp_id
		WHERE s.category_id = $1
		ORDER BY e.element_cmp_id ASC;
	`
	rows, err = s.db.QueryContext(ctx, elementQuery, categoryID)
	if err != nil {
		return nil, fmt.Errorf("store: GetConfigurableTree failed to query elements: %w", err)
	}
	elementIndex := map[int64][2]int{} // element id -> (section slot, element slot)
	for rows.Next() {
		var e domain.ElementCmp
		if err := rows.Scan(&e.ID, &e.SectionCmpID, &e.Name, &e.ImgURL); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: GetConfigurableTree failed to scan element row: %w", err)
		}
		si, ok := sectionIndex[e.SectionCmpID]
		if !ok {
			continue
		}
		elementIndex[e.ID] = [2]int{si, len(sections[si].Elements)}
		sections[si].Elements = append(sections[si].Elements, e)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("store: GetConfigurableTree element iteration error: %w", err)
	}
	rows.Close()

	optionQuery := `
		SELECT o.option_cmp_id, o.element_cmp_id, o.name, o.price, o.img_url
		FROM shop.option_cmps o
		JOIN shop.element_cmps e ON e.element_cmp_id = o.element_cmp_id
		JOIN shop.section_cmps s ON s.section_cmp_id = e.section_cmp_id
		WHERE s.category_id = $1
		ORDER BY o.option_cmp_id ASC;
	`
	rows, err = s.db.QueryContext(ctx, optionQuery, categoryID)
	if err != nil {
		return nil, fmt.Errorf("store: GetConfigurableTree failed to query options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o domain.OptionCmp
		if err := rows.Scan(&o.ID, &o.ElementCmpID, &o.Name, &o.Price, &o.ImgURL); err != nil {
			return nil, fmt.Errorf("store: GetConfigurableTree failed to scan option row: %w", err)
		}
		slot, ok := elementIndex[o.ElementCmpID]
		if !ok {
			continue
		}
		element := &sections[slot[0]].Elements[slot[1]]
		element.Options = append(element.Options, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: GetConfigurableTree option iteration error: %w", err)
	}

	return sections, nil
}

// GetProductTree returns the product with its owned details and
// section/option groups preloaded.
func (s *PostgresStore) GetProductTree(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detailQuery := `
		SELECT detail_id, product_id, name, description
		FROM shop.details
		WHERE product_id = $1
		ORDER BY detail_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, detailQuery, id)
	if err != nil {
		return nil, fmt.Errorf("store: GetProductTree failed to query details: %w", err)
	}
	for rows.Next() {
		var d domain.Detail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Name, &d.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: GetProductTree failed to scan detail row: %w", err)
		}
		product.Details = append(product.Details, d)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("store: GetProductTree detail iteration error: %w", err)
	}
	rows.Close()

	sectionQuery := `
		SELECT section_id, product_id, name
		FROM shop.sections
		WHERE product_id = $1
		ORDER BY section_id ASC;
	`
	rows, err = s.db.QueryContext(ctx, sectionQuery, id)
	if err != nil {
		return nil, fmt.Errorf("store: GetProductTree failed to query sections: %w", err)
	}
	sectionIndex := map[int64]int{}
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.ProductID, &sec.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: GetProductTree failed to scan section row: %w", err)
		}
		sectionIndex[sec.ID] = len(product.Sections)
		product.Sections = append(product.Sections, sec)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("store: GetProductTree section iteration error: %w", err)
	}
	rows.Close()

	if len(product.Sections) == 0 {
		return product, nil
	}

	optionQuery := `
		SELECT o.option_id, o.section_id, o.name, o.price
		FROM shop.options o
		JOIN shop.sections s ON s.section_id = o.section_id
		WHERE s.product_id = $1
		ORDER BY o.option_id ASC;
	`
	rows, err = s.db.QueryContext(ctx, optionQuery, id)
	if err != nil {
		return nil, fmt.Errorf("store: GetProductTree failed to query options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o domain.Option
		if err := rows.Scan(&o.ID, &o.SectionID, &o.Name, &o.Price); err != nil {
			return nil, fmt.Errorf("store: GetProductTree failed to scan option row: %w", err)
		}
		if si, ok := sectionIndex[o.SectionID]; ok {
			product.Sections[si].Options = append(product.Sections[si].Options, o)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: GetProductTree option iteration error: %w", err)
	}

	return product, nil
}
