package catalog

import (
	"context"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"
)

// Associations manages product sub-collections (details) and the shared
// many-to-many tag/material relations. Each relation is a single-direction
// association row; shared entities are only ever attached and detached
// through here, never deleted through a product.
type Associations struct {
	products store.ProductStorer
	assoc    store.AssociationStorer
}

// NewAssociations creates the association manager.
func NewAssociations(products store.ProductStorer, assoc store.AssociationStorer) *Associations {
	return &Associations{products: products, assoc: assoc}
}

// AssignTag attaches an existing tag to an existing product. A duplicate
// association fails with store.ErrTagAlreadyAssigned.
func (a *Associations) AssignTag(ctx context.Context, productID, tagID int64) error {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	if _, err := a.assoc.GetTagByID(ctx, tagID); err != nil {
		return err
	}
	return a.assoc.AssignTag(ctx, productID, tagID)
}

// RemoveTag detaches the tag from the product. The tag itself survives.
func (a *Associations) RemoveTag(ctx context.Context, productID, tagID int64) error {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	return a.assoc.RemoveTag(ctx, productID, tagID)
}

// ListTags returns the tags attached to the product.
func (a *Associations) ListTags(ctx context.Context, productID int64) ([]domain.Tag, error) {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	return a.assoc.ListTagsByProduct(ctx, productID)
}

// AssignMaterial attaches an existing material to an existing product.
func (a *Associations) AssignMaterial(ctx context.Context, productID, materialID int64) error {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	if _, err := a.assoc.GetMaterialByID(ctx, materialID); err != nil {
		return err
	}
	return a.assoc.AssignMaterial(ctx, productID, materialID)
}

// RemoveMaterial detaches the material from the product.
func (a *Associations) RemoveMaterial(ctx context.Context, productID, materialID int64) error {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	return a.assoc.RemoveMaterial(ctx, productID, materialID)
}

// AssignDetail persists a new detail owned by the product.
func (a *Associations) AssignDetail(ctx context.Context, productID int64, detail DetailPayload) (*domain.Detail, error) {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	return a.assoc.CreateDetail(ctx, &domain.Detail{
		ProductID:   productID,
		Name:        detail.Name,
		Description: detail.Description,
	})
}

// UpdateDetail replaces an existing detail's fields.
func (a *Associations) UpdateDetail(ctx context.Context, productID, detailID int64, detail DetailPayload) (*domain.Detail, error) {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	return a.assoc.UpdateDetail(ctx, &domain.Detail{
		ID:          detailID,
		ProductID:   productID,
		Name:        detail.Name,
		Description: detail.Description,
	})
}

// RemoveDetail deletes a detail owned by the product.
func (a *Associations) RemoveDetail(ctx context.Context, productID, detailID int64) error {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	return a.assoc.DeleteDetail(ctx, productID, detailID)
}

// DeleteProduct detaches the shared tag and material relations first, then
// deletes the product; exclusively-owned details and sections cascade with
// it. The detach-first ordering keeps shared entities free of dangling
// back-references.
func (a *Associations) DeleteProduct(ctx context.Context, productID int64) error {
	if _, err := a.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	if err := a.assoc.DetachAllTags(ctx, productID); err != nil {
		return err
	}
	if err := a.assoc.DetachAllMaterials(ctx, productID); err != nil {
		return err
	}
	return a.assoc.DeleteProduct(ctx, productID)
}
