package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
)

// runInTx is the shared begin/rollback/commit wrapper. fn runs against the
// open transaction; any error (including commit failure) leaves the store
// exactly as it was before the call.
func (s *PostgresStore) runInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("ERROR: Transaction rollback failed: %v (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: failed to commit transaction: %w", err)
	}
	return nil
}

// RunCatalogTx implements CatalogTxRunner.
func (s *PostgresStore) RunCatalogTx(ctx context.Context, fn func(tx CatalogTx) error) error {
	return s.runInTx(ctx, func(tx *sql.Tx) error {
		return fn(&catalogTx{tx: tx})
	})
}

// catalogTx implements CatalogTx on an open *sql.Tx.
type catalogTx struct {
	tx *sql.Tx
}

func (t *catalogTx) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT category_id, name, mode, allow_creation, created_at, updated_at
		FROM shop.categories
		WHERE category_id = $1;
	`
	var category domain.Category
	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Mode, &category.AllowCreation,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: GetCategoryByID failed to scan row: %w", err)
	}
	return &category, nil
}

func (t *catalogTx) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO shop.categories (name, mode, allow_creation)
		VALUES ($1, $2, $3)
		RETURNING category_id, name, mode, allow_creation, created_at, updated_at;
	`
	var created domain.Category
	err := t.tx.QueryRowContext(ctx, query, category.Name, category.Mode, category.AllowCreation).Scan(
		&created.ID, &created.Name, &created.Mode, &created.AllowCreation,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreateCategory failed to scan row: %w", err)
	}
	return &created, nil
}

func (t *catalogTx) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		UPDATE shop.categories
		SET name = $1, allow_creation = $2, updated_at = CURRENT_TIMESTAMP
		WHERE category_id = $3
		RETURNING category_id, name, mode, allow_creation, created_at, updated_at;
	`
	var updated domain.Category
	err := t.tx.QueryRowContext(ctx, query, category.Name, category.AllowCreation, category.ID).Scan(
		&updated.ID, &updated.Name, &updated.Mode, &updated.AllowCreation,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: UpdateCategory failed to scan row: %w", err)
	}
	return &updated, nil
}

func (t *catalogTx) UpsertSectionCmp(ctx context.Context, section *domain.SectionCmp) (*domain.SectionCmp, error) {
	var query string
	var row *sql.Row
	if section.ID == 0 {
		query = `
			INSERT INTO shop.section_cmps (category_id, name, img_url)
			VALUES ($1, $2, $3)
			RETURNING section_cmp_id, category_id, name, img_url;
		`
		row = t.tx.QueryRowContext(ctx, query, section.CategoryID, section.Name, section.ImgURL)
	} else {
		query = `
			UPDATE shop.section_cmps
			SET category_id = $1, name = $2, img_url = $3
			WHERE section_cmp_id = $4
			RETURNING section_cmp_id, category_id, name, img_url;
		`
		row = t.tx.QueryRowContext(ctx, query, section.CategoryID, section.Name, section.ImgURL, section.ID)
	}
	var saved domain.SectionCmp
	if err := row.Scan(&saved.ID, &saved.CategoryID, &saved.Name, &saved.ImgURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSectionCmpNotFound
		}
		return nil, fmt.Errorf("store: UpsertSectionCmp failed to scan row: %w", err)
	}
	return &saved, nil
}

func (t *catalogTx) UpsertElementCmp(ctx context.Context, element *domain.ElementCmp) (*domain.ElementCmp, error) {
	var row *sql.Row
	if element.ID == 0 {
		query := `
			INSERT INTO shop.element_cmps (section_cmp_id, name, img_url)
			VALUES ($1, $2, $3)
			RETURNING element_cmp_id, section_cmp_id, name, img_url;
		`
		row = t.tx.QueryRowContext(ctx, query, element.SectionCmpID, element.Name, element.ImgURL)
	} else {
		query := `
			UPDATE shop.element_cmps
			SET section_cmp_id = $1, name = $2, img_url = $3
			WHERE element_cmp_id = $4
			RETURNING element_cmp_id, section_cmp_id, name, img_url;
		`
		row = t.tx.QueryRowContext(ctx, query, element.SectionCmpID, element.Name, element.ImgURL, element.ID)
	}
	var saved domain.ElementCmp
	if err := row.Scan(&saved.ID, &saved.SectionCmpID, &saved.Name, &saved.ImgURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrElementCmpNotFound
		}
		return nil, fmt.Errorf("store: UpsertElementCmp failed to scan row: %w", err)
	}
	return &saved, nil
}

func (t *catalogTx) UpsertOptionCmp(ctx context.Context, option *domain.OptionCmp) (*domain.OptionCmp, error) {
	var row *sql.Row
	if option.ID == 0 {
		query := `
			INSERT INTO shop.option_cmps (element_cmp_id, name, price, img_url)
			VALUES ($1, $2, $3, $4)
			RETURNING option_cmp_id, element_cmp_id, name, price, img_url;
		`
		row = t.tx.QueryRowContext(ctx, query, option.ElementCmpID, option.Name, option.Price, option.ImgURL)
	} else {
		query := `
			UPDATE shop.option_cmps
			SET element_cmp_id = $1, name = $2, price = $3, img_url = $4
			WHERE option_cmp_id = $5
			RETURNING option_cmp_id, element_cmp_id, name, price, img_url;
		`
		row = t.tx.QueryRowContext(ctx, query, option.ElementCmpID, option.Name, option.Price, option.ImgURL, option.ID)
	}
	var saved domain.OptionCmp
	if err := row.Scan(&saved.ID, &saved.ElementCmpID, &saved.Name, &saved.Price, &saved.ImgURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOptionCmpNotFound
		}
		return nil, fmt.Errorf("store: UpsertOptionCmp failed to scan row: %w", err)
	}
	return &saved, nil
}

func (t *catalogTx) UpsertProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var row *sql.Row
	if product.ID == 0 {
		query := `
			INSERT INTO shop.products (category_id, name, value, quantity, editable, img_url, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING product_id, category_id, name, value, quantity, editable, img_url, description, created_at, updated_at;
		`
		row = t.tx.QueryRowContext(ctx, query,
			product.CategoryID, product.Name, product.Value, product.Quantity,
			product.Editable, product.ImgURL, product.Description)
	} else {
		query := `
			UPDATE shop.products
			SET category_id = $1, name = $2, value = $3, quantity = $4, editable = $5, img_url = $6, description = $7, updated_at = CURRENT_TIMESTAMP
			WHERE product_id = $8
			RETURNING product_id, category_id, name, value, quantity, editable, img_url, description, created_at, updated_at;
		`
		row = t.tx.QueryRowContext(ctx, query,
			product.CategoryID, product.Name, product.Value, product.Quantity,
			product.Editable, product.ImgURL, product.Description, product.ID)
	}
	var saved domain.Product
	if err := scanProduct(row, &saved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: UpsertProduct failed to scan row: %w", err)
	}
	return &saved, nil
}

func (t *catalogTx) UpsertSection(ctx context.Context, section *domain.Section) (*domain.Section, error) {
	var row *sql.Row
	if section.ID == 0 {
		query := `
			INSERT INTO shop.sections (product_id, name)
			VALUES ($1, $2)
			RETURNING section_id, product_id, name;
		`
		row = t.tx.QueryRowContext(ctx, query, section.ProductID, section.Name)
	} else {
		query := `
			UPDATE shop.sections
			SET product_id = $1, name = $2
			WHERE section_id = $3
			RETURNING section_id, product_id, name;
		`
		row = t.tx.QueryRowContext(ctx, query, section.ProductID, section.Name, section.ID)
	}
	var saved domain.Section
	if err := row.Scan(&saved.ID, &saved.ProductID, &saved.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("store: UpsertSection failed to scan row: %w", err)
	}
	return &saved, nil
}

func (t *catalogTx) UpsertOption(ctx context.Context, option *domain.Option) (*domain.Option, error) {
	var row *sql.Row
	if option.ID == 0 {
		query := `
			INSERT INTO shop.options (section_id, name, price)
			VALUES ($1, $2, $3)
			RETURNING option_id, section_id, name, price;
		`
		row = t.tx.QueryRowContext(ctx, query, option.SectionID, option.Name, option.Price)
	} else {
		query := `
			UPDATE shop.options
			SET section_id = $1, name = $2, price = $3
			WHERE option_id = $4
			RETURNING option_id, section_id, name, price;
		`
		row = t.tx.QueryRowContext(ctx, query, option.SectionID, option.Name, option.Price, option.ID)
	}
	var saved domain.Option
	if err := row.Scan(&saved.ID, &saved.SectionID, &saved.Name, &saved.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("store: UpsertOption failed to scan row: %w", err)
	}
	return &saved, nil
}

// ReplaceDetails supersedes the product's owned detail set wholesale, the
// explicit replacement write path standing in for ORM orphan removal.
func (t *catalogTx) ReplaceDetails(ctx context.Context, productID int64, details []domain.Detail) ([]domain.Detail, error) {
	deleteQuery := `DELETE FROM shop.details WHERE product_id = $1;`
	if _, err := t.tx.ExecContext(ctx, deleteQuery, productID); err != nil {
		return nil, fmt.Errorf("store: ReplaceDetails failed to clear details: %w", err)
	}
	insertQuery := `
		INSERT INTO shop.details (product_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING detail_id, product_id, name, description;
	`
	saved := make([]domain.Detail, 0, len(details))
	for _, d := range details {
		var out domain.Detail
		err := t.tx.QueryRowContext(ctx, insertQuery, productID, d.Name, d.Description).
			Scan(&out.ID, &out.ProductID, &out.Name, &out.Description)
		if err != nil {
			return nil, fmt.Errorf("store: ReplaceDetails failed to insert detail: %w", err)
		}
		saved = append(saved, out)
	}
	return saved, nil
}

// --- Order transaction ---

// RunOrderTx implements OrderTxRunner.
func (s *PostgresStore) RunOrderTx(ctx context.Context, fn func(tx OrderTx) error) error {
	return s.runInTx(ctx, func(tx *sql.Tx) error {
		return fn(&orderTx{tx: tx})
	})
}

type orderTx struct {
	tx *sql.Tx
}

// DecrementStock subtracts qty with a guard so concurrent orders can never
// drive the stock negative; the row lock taken by the UPDATE serializes
// competing decrements on the same product.
func (t *orderTx) DecrementStock(ctx context.Context, productID, qty int64) error {
	query := `
		UPDATE shop.products
		SET quantity = quantity - $1, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $2 AND quantity - $1 >= 0;
	`
	result, err := t.tx.ExecContext(ctx, query, qty, productID)
	if err != nil {
		return fmt.Errorf("store: DecrementStock failed to execute update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DecrementStock failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Distinguish a missing product from an insufficient stock guard trip.
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM shop.products WHERE product_id = $1);`
		if err := t.tx.QueryRowContext(ctx, checkQuery, productID).Scan(&exists); err != nil {
			return fmt.Errorf("store: DecrementStock failed existence check: %w", err)
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrOutOfStock
	}
	return nil
}

func (t *orderTx) InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	orderQuery := `
		INSERT INTO shop.orders (order_number, address, shipment_fee, total)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id, created_at;
	`
	saved := *order
	err := t.tx.QueryRowContext(ctx, orderQuery, order.Number, order.Address, order.ShipmentFee, order.Total).
		Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: InsertOrder failed to insert order: %w", err)
	}

	productLineQuery := `
		INSERT INTO shop.order_products (order_id, product_id, name, unit_value, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING order_product_id;
	`
	for i := range saved.Products {
		line := &saved.Products[i]
		err := t.tx.QueryRowContext(ctx, productLineQuery,
			saved.ID, line.ProductID, line.Name, line.UnitValue, line.Quantity, line.Subtotal,
		).Scan(&line.ID)
		if err != nil {
			return nil, fmt.Errorf("store: InsertOrder failed to insert product line: %w", err)
		}
	}

	cmpLineQuery := `
		INSERT INTO shop.order_cmps (order_id, category_id, subtotal)
		VALUES ($1, $2, $3)
		RETURNING order_cmp_id;
	`
	choiceQuery := `
		INSERT INTO shop.order_cmp_choices (order_cmp_id, element_cmp_id, element_name, option_cmp_id, option_name, price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i := range saved.Configurations {
		line := &saved.Configurations[i]
		err := t.tx.QueryRowContext(ctx, cmpLineQuery, saved.ID, line.CategoryID, line.Subtotal).Scan(&line.ID)
		if err != nil {
			return nil, fmt.Errorf("store: InsertOrder failed to insert configuration line: %w", err)
		}
		for _, choice := range line.Choices {
			_, err := t.tx.ExecContext(ctx, choiceQuery,
				line.ID, choice.ElementCmpID, choice.ElementName,
				choice.OptionCmpID, choice.OptionName, choice.Price)
			if err != nil {
				return nil, fmt.Errorf("store: InsertOrder failed to insert choice: %w", err)
			}
		}
	}

	return &saved, nil
}
