package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
)

// --- AssociationStorer Implementation ---
//
// Tag and material relations are plain association rows
// (product_tags/product_materials), maintained one direction only; the
// shared tag/material entity is never deleted through a product.

func (s *PostgresStore) GetTagByID(ctx context.Context, id int64) (*domain.Tag, error) {
	query := `SELECT tag_id, tag_name FROM shop.tags WHERE tag_id = $1;`
	var tag domain.Tag
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("store: GetTagByID failed to scan row: %w", err)
	}
	return &tag, nil
}

func (s *PostgresStore) AssignTag(ctx context.Context, productID, tagID int64) error {
	query := `INSERT INTO shop.product_tags (product_id, tag_id) VALUES ($1, $2);`
	if _, err := s.db.ExecContext(ctx, query, productID, tagID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // duplicate association
				return ErrTagAlreadyAssigned
			case "23503": // broken FK: product or tag is gone
				if pqErr.Constraint == "product_tags_tag_id_fkey" {
					return ErrTagNotFound
				}
				return ErrProductNotFound
			}
		}
		return fmt.Errorf("store: AssignTag failed to insert association: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveTag(ctx context.Context, productID, tagID int64) error {
	query := `DELETE FROM shop.product_tags WHERE product_id = $1 AND tag_id = $2;`
	result, err := s.db.ExecContext(ctx, query, productID, tagID)
	if err != nil {
		return fmt.Errorf("store: RemoveTag failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: RemoveTag failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (s *PostgresStore) ListTagsByProduct(ctx context.Context, productID int64) ([]domain.Tag, error) {
	query := `
		SELECT t.tag_id, t.tag_name
		FROM shop.tags t
		JOIN shop.product_tags pt ON pt.tag_id = t.tag_id
		WHERE pt.product_id = $1
		ORDER BY t.tag_name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("store: ListTagsByProduct failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("store: ListTagsByProduct failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListTagsByProduct iteration error: %w", err)
	}
	return tags, nil
}

func (s *PostgresStore) DetachAllTags(ctx context.Context, productID int64) error {
	query := `DELETE FROM shop.product_tags WHERE product_id = $1;`
	if _, err := s.db.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("store: DetachAllTags failed to execute delete: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetMaterialByID(ctx context.Context, id int64) (*domain.Material, error) {
	query := `SELECT material_id, name FROM shop.materials WHERE material_id = $1;`
	var material domain.Material
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&material.ID, &material.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("store: GetMaterialByID failed to scan row: %w", err)
	}
	return &material, nil
}

func (s *PostgresStore) AssignMaterial(ctx context.Context, productID, materialID int64) error {
	query := `INSERT INTO shop.product_materials (product_id, material_id) VALUES ($1, $2);`
	if _, err := s.db.ExecContext(ctx, query, productID, materialID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrMaterialAlreadyAssigned
			case "23503":
				if pqErr.Constraint == "product_materials_material_id_fkey" {
					return ErrMaterialNotFound
				}
				return ErrProductNotFound
			}
		}
		return fmt.Errorf("store: AssignMaterial failed to insert association: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveMaterial(ctx context.Context, productID, materialID int64) error {
	query := `DELETE FROM shop.product_materials WHERE product_id = $1 AND material_id = $2;`
	result, err := s.db.ExecContext(ctx, query, productID, materialID)
	if err != nil {
		return fmt.Errorf("store: RemoveMaterial failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: RemoveMaterial failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

func (s *PostgresStore) DetachAllMaterials(ctx context.Context, productID int64) error {
	query := `DELETE FROM shop.product_materials WHERE product_id = $1;`
	if _, err := s.db.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("store: DetachAllMaterials failed to execute delete: %w", err)
	}
	return nil
}

// --- Details ---

func (s *PostgresStore) CreateDetail(ctx context.Context, detail *domain.Detail) (*domain.Detail, error) {
	query := `
		INSERT INTO shop.details (product_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING detail_id, product_id, name, description;
	`
	var created domain.Detail
	err := s.db.QueryRowContext(ctx, query, detail.ProductID, detail.Name, detail.Description).
		Scan(&created.ID, &created.ProductID, &created.Name, &created.Description)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: CreateDetail failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) UpdateDetail(ctx context.Context, detail *domain.Detail) (*domain.Detail, error) {
	query := `
		UPDATE shop.details
		SET name = $1, description = $2
		WHERE detail_id = $3 AND product_id = $4
		RETURNING detail_id, product_id, name, description;
	`
	var updated domain.Detail
	err := s.db.QueryRowContext(ctx, query, detail.Name, detail.Description, detail.ID, detail.ProductID).
		Scan(&updated.ID, &updated.ProductID, &updated.Name, &updated.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDetailNotFound
		}
		return nil, fmt.Errorf("store: UpdateDetail failed to scan row: %w", err)
	}
	return &updated, nil
}

func (s *PostgresStore) DeleteDetail(ctx context.Context, productID, detailID int64) error {
	query := `DELETE FROM shop.details WHERE detail_id = $1 AND product_id = $2;`
	result, err := s.db.ExecContext(ctx, query, detailID, productID)
	if err != nil {
		return fmt.Errorf("store: DeleteDetail failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteDetail failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDetailNotFound
	}
	return nil
}

// DeleteProduct removes the product row; owned details/sections and the
// association rows cascade with it, shared tags and materials survive.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM shop.products WHERE product_id = $1;`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// --- Back-in-stock waiters ---

func (s *PostgresStore) AddWaiter(ctx context.Context, productID int64, email string) error {
	query := `INSERT INTO shop.product_waiters (product_id, email) VALUES ($1, $2);`
	if _, err := s.db.ExecContext(ctx, query, productID, email); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrWaiterAlreadyRegistered
			case "23503":
				return ErrProductNotFound
			}
		}
		return fmt.Errorf("store: AddWaiter failed to insert row: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListWaiters(ctx context.Context, productID int64) ([]string, error) {
	query := `SELECT email FROM shop.product_waiters WHERE product_id = $1 ORDER BY email ASC;`
	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("store: ListWaiters failed to query rows: %w", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("store: ListWaiters failed to scan row: %w", err)
		}
		emails = append(emails, email)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListWaiters iteration error: %w", err)
	}
	return emails, nil
}

func (s *PostgresStore) ClearWaiters(ctx context.Context, productID int64) error {
	query := `DELETE FROM shop.product_waiters WHERE product_id = $1;`
	if _, err := s.db.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("store: ClearWaiters failed to execute delete: %w", err)
	}
	return nil
}
