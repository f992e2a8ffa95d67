package store

import (
	"context"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
)

// ListCategoriesParams holds parameters for listing categories.
type ListCategoriesParams struct {
	Limit  int
	Offset int
	Mode   *domain.CategoryMode // optional filter by catalog mode
}

// CategoryStorer defines the read/delete operations for categories and
// their owned configurable tree.
type CategoryStorer interface {
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, params ListCategoriesParams) ([]domain.Category, int, error)
	// GetConfigurableTree returns the SectionCmp subtree of a configurable
	// category with elements and options preloaded. It fails with
	// ErrCategoryNotFound if the id is unknown and ErrCategoryModeMismatch
	// if the category roots the regular tree.
	GetConfigurableTree(ctx context.Context, categoryID int64) ([]domain.SectionCmp, error)
	// DeleteCategory removes the category; owned subtree rows follow via
	// the store's cascade rules. Shared tag/material rows are untouched.
	DeleteCategory(ctx context.Context, id int64) error
}

// ListProductsParams holds parameters for listing products.
type ListProductsParams struct {
	Limit       int
	Offset      int
	SearchQuery *string
	CategoryID  *int64
	TagID       *int64
	Available   *bool // quantity > 0 filter
}

// ProductStorer defines the database operations for products.
type ProductStorer interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetProductTree is GetProductByID plus owned details and sections/options.
	GetProductTree(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Back-in-stock interest registrations.
	AddWaiter(ctx context.Context, productID int64, email string) error
	ListWaiters(ctx context.Context, productID int64) ([]string, error)
	ClearWaiters(ctx context.Context, productID int64) error
}

// AssociationStorer manages the product sub-collections and the shared
// many-to-many tag/material relations as explicit association rows.
type AssociationStorer interface {
	GetTagByID(ctx context.Context, id int64) (*domain.Tag, error)
	AssignTag(ctx context.Context, productID, tagID int64) error
	RemoveTag(ctx context.Context, productID, tagID int64) error
	ListTagsByProduct(ctx context.Context, productID int64) ([]domain.Tag, error)
	DetachAllTags(ctx context.Context, productID int64) error

	GetMaterialByID(ctx context.Context, id int64) (*domain.Material, error)
	AssignMaterial(ctx context.Context, productID, materialID int64) error
	RemoveMaterial(ctx context.Context, productID, materialID int64) error
	DetachAllMaterials(ctx context.Context, productID int64) error

	CreateDetail(ctx context.Context, detail *domain.Detail) (*domain.Detail, error)
	UpdateDetail(ctx context.Context, detail *domain.Detail) (*domain.Detail, error)
	DeleteDetail(ctx context.Context, productID, detailID int64) error

	DeleteProduct(ctx context.Context, id int64) error
}

// CatalogTx is the write surface of one atomic cascade. Every method either
// inserts (zero id) or replaces (non-zero id) a single node and returns it
// with its store-assigned id, so the caller can stamp parent ids top-down.
type CatalogTx interface {
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)

	UpsertSectionCmp(ctx context.Context, section *domain.SectionCmp) (*domain.SectionCmp, error)
	UpsertElementCmp(ctx context.Context, element *domain.ElementCmp) (*domain.ElementCmp, error)
	UpsertOptionCmp(ctx context.Context, option *domain.OptionCmp) (*domain.OptionCmp, error)

	UpsertProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpsertSection(ctx context.Context, section *domain.Section) (*domain.Section, error)
	UpsertOption(ctx context.Context, option *domain.Option) (*domain.Option, error)
	// ReplaceDetails supersedes the product's owned detail set wholesale.
	ReplaceDetails(ctx context.Context, productID int64, details []domain.Detail) ([]domain.Detail, error)
}

// CatalogTxRunner runs fn inside a single database transaction. A non-nil
// error from fn (or from commit) rolls everything back; partial subtree
// writes are never observable.
type CatalogTxRunner interface {
	RunCatalogTx(ctx context.Context, fn func(tx CatalogTx) error) error
}

// OrderTx is the write surface of one atomic order commit.
type OrderTx interface {
	// DecrementStock subtracts qty from the product's stock, guarded so the
	// quantity can never go negative. ErrOutOfStock when the guard trips,
	// ErrProductNotFound when the id is unknown.
	DecrementStock(ctx context.Context, productID, qty int64) error
	InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// OrderTxRunner runs fn inside a single database transaction, same contract
// as CatalogTxRunner.
type OrderTxRunner interface {
	RunOrderTx(ctx context.Context, fn func(tx OrderTx) error) error
}
