package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
)

// Predefined errors for store operations
var (
	ErrCategoryNotFound        = errors.New("store: category not found")
	ErrCategoryModeMismatch    = errors.New("store: category is operated in the other catalog mode")
	ErrProductNotFound         = errors.New("store: product not found")
	ErrSectionCmpNotFound      = errors.New("store: section not found")
	ErrElementCmpNotFound      = errors.New("store: element not found")
	ErrOptionCmpNotFound       = errors.New("store: option not found")
	ErrSectionNotFound         = errors.New("store: product section not found")
	ErrOptionNotFound          = errors.New("store: product option not found")
	ErrDetailNotFound          = errors.New("store: detail not found")
	ErrTagNotFound             = errors.New("store: tag not found")
	ErrMaterialNotFound        = errors.New("store: material not found")
	ErrTagAlreadyAssigned      = errors.New("store: product already has the tag")
	ErrMaterialAlreadyAssigned = errors.New("store: product already has the material")
	ErrWaiterAlreadyRegistered = errors.New("store: email already waiting on the product")
	ErrOutOfStock              = errors.New("store: requested quantity exceeds stock")
)

// PostgresStore implements the storer interfaces using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// --- CategoryStorer Implementation ---

func (s *PostgresStore) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT category_id, name, mode, allow_creation, created_at, updated_at
		FROM shop.categories
		WHERE category_id = $1;
	`
	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Mode,
		&category.AllowCreation,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: GetCategoryByID failed to scan row: %w", err)
	}
	return &category, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, params ListCategoriesParams) ([]domain.Category, int, error) {
	var queryArgs []interface{}
	whereCondition := ""
	if params.Mode != nil {
		whereCondition = " WHERE mode = $1"
		queryArgs = append(queryArgs, string(*params.Mode))
	}

	countQuery := "SELECT COUNT(*) FROM shop.categories" + whereCondition
	var totalCount int
	if err := s.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories failed to count categories: %w", err)
	}

	if totalCount == 0 {
		return []domain.Category{}, 0, nil
	}

	argID := len(queryArgs) + 1
	dataQuery := fmt.Sprintf(`
		SELECT category_id, name, mode, allow_creation, created_at, updated_at
		FROM shop.categories%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d;
	`, whereCondition, argID, argID+1)
	queryArgs = append(queryArgs, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, dataQuery, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0, params.Limit)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Mode, &c.AllowCreation, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("store: ListCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}

	return categories, totalCount, nil
}

// DeleteCategory removes the category row. Owned children (the SectionCmp
// tree, or attached products with their details/sections) are removed by the
// schema's ON DELETE CASCADE rules; association rows vanish with the
// products, shared tag/material rows stay.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id int64) error {
	query := `DELETE FROM shop.categories WHERE category_id = $1;`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: DeleteCategory failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteCategory failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// --- ProductStorer Implementation ---

const productColumns = "product_id, category_id, name, value, quantity, editable, img_url, description, created_at, updated_at"

func scanProduct(row interface{ Scan(...interface{}) error }, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Value, &p.Quantity,
		&p.Editable, &p.ImgURL, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT product_id, category_id, name, value, quantity, editable, img_url, description, created_at, updated_at
		FROM shop.products
		WHERE product_id = $1;
	`
	var product domain.Product
	err := scanProduct(s.db.QueryRowContext(ctx, query, id), &product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return &product, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error) {
	var queryArgs []interface{}
	var whereClauses []string
	argID := 1

	if params.SearchQuery != nil && *params.SearchQuery != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argID, argID+1))
		searchTerm := "%" + *params.SearchQuery + "%"
		queryArgs = append(queryArgs, searchTerm, searchTerm)
		argID += 2
	}
	if params.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("category_id = $%d", argID))
		queryArgs = append(queryArgs, *params.CategoryID)
		argID++
	}
	if params.TagID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("product_id IN (SELECT product_id FROM shop.product_tags WHERE tag_id = $%d)", argID))
		queryArgs = append(queryArgs, *params.TagID)
		argID++
	}
	if params.Available != nil {
		if *params.Available {
			whereClauses = append(whereClauses, "quantity > 0")
		} else {
			whereClauses = append(whereClauses, "quantity = 0")
		}
	}

	whereCondition := ""
	if len(whereClauses) > 0 {
		whereCondition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM shop.products" + whereCondition
	var totalCount int
	if err := s.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to count products: %w", err)
	}

	if totalCount == 0 {
		return []domain.Product{}, 0, nil
	}

	dataQuery := fmt.Sprintf(`
		SELECT %s
		FROM shop.products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, whereCondition, argID, argID+1)
	finalQueryArgs := append(queryArgs, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, dataQuery, finalQueryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, params.Limit)
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}

	return products, totalCount, nil
}

func (s *PostgresStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	// Existence check first so a miss surfaces as ErrCategoryNotFound
	// instead of an empty list.
	if _, err := s.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	query := `
		SELECT product_id, category_id, name, value, quantity, editable, img_url, description, created_at, updated_at
		FROM shop.products
		WHERE category_id = $1
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("store: ListProductsByCategory failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("store: ListProductsByCategory failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProductsByCategory iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE shop.products
		SET name = $1, value = $2, quantity = $3, editable = $4, img_url = $5, description = $6, category_id = $7, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $8
		RETURNING product_id, category_id, name, value, quantity, editable, img_url, description, created_at, updated_at;
	`
	var updated domain.Product
	err := scanProduct(s.db.QueryRowContext(ctx, query,
		product.Name, product.Value, product.Quantity, product.Editable,
		product.ImgURL, product.Description, product.CategoryID, product.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", err)
	}
	return &updated, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		err := s.db.Close()
		if err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
		log.Println("INFO: Database connection pool closed successfully.")
		return nil
	}
	return nil
}
