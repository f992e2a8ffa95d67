package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/catalog"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/domain"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/order"
	"github.com/gabriel-ferraro/projetoHabitableCadeiras/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryStorer is a mock implementation of store.CategoryStorer
type MockCategoryStorer struct {
	mock.Mock
}

func (m *MockCategoryStorer) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) ListCategories(ctx context.Context, params store.ListCategoriesParams) ([]domain.Category, int, error) {
	args := m.Called(ctx, params)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Int(1), args.Error(2)
}

func (m *MockCategoryStorer) GetConfigurableTree(ctx context.Context, categoryID int64) ([]domain.SectionCmp, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SectionCmp), args.Error(1)
}

func (m *MockCategoryStorer) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductStorer is a mock implementation of store.ProductStorer
type MockProductStorer struct {
	mock.Mock
}

func (m *MockProductStorer) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) GetProductTree(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) ListProducts(ctx context.Context, params store.ListProductsParams) ([]domain.Product, int, error) {
	args := m.Called(ctx, params)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Int(1), args.Error(2)
}

func (m *MockProductStorer) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductStorer) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) AddWaiter(ctx context.Context, productID int64, email string) error {
	args := m.Called(ctx, productID, email)
	return args.Error(0)
}

func (m *MockProductStorer) ListWaiters(ctx context.Context, productID int64) ([]string, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductStorer) ClearWaiters(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockAssociationStorer is a mock implementation of store.AssociationStorer
type MockAssociationStorer struct {
	mock.Mock
}

func (m *MockAssociationStorer) GetTagByID(ctx context.Context, id int64) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockAssociationStorer) AssignTag(ctx context.Context, productID, tagID int64) error {
	args := m.Called(ctx, productID, tagID)
	return args.Error(0)
}

func (m *MockAssociationStorer) RemoveTag(ctx context.Context, productID, tagID int64) error {
	args := m.Called(ctx, productID, tagID)
	return args.Error(0)
}

func (m *MockAssociationStorer) ListTagsByProduct(ctx context.Context, productID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockAssociationStorer) DetachAllTags(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockAssociationStorer) GetMaterialByID(ctx context.Context, id int64) (*domain.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockAssociationStorer) AssignMaterial(ctx context.Context, productID, materialID int64) error {
	args := m.Called(ctx, productID, materialID)
	return args.Error(0)
}

func (m *MockAssociationStorer) RemoveMaterial(ctx context.Context, productID, materialID int64) error {
	args := m.Called(ctx, productID, materialID)
	return args.Error(0)
}

func (m *MockAssociationStorer) DetachAllMaterials(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockAssociationStorer) CreateDetail(ctx context.Context, detail *domain.Detail) (*domain.Detail, error) {
	args := m.Called(ctx, detail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Detail), args.Error(1)
}

func (m *MockAssociationStorer) UpdateDetail(ctx context.Context, detail *domain.Detail) (*domain.Detail, error) {
	args := m.Called(ctx, detail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Detail), args.Error(1)
}

func (m *MockAssociationStorer) DeleteDetail(ctx context.Context, productID, detailID int64) error {
	args := m.Called(ctx, productID, detailID)
	return args.Error(0)
}

func (m *MockAssociationStorer) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalogTx is a mock implementation of store.CatalogTx
type MockCatalogTx struct {
	mock.Mock
}

func (m *MockCatalogTx) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogTx) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogTx) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogTx) UpsertSectionCmp(ctx context.Context, section *domain.SectionCmp) (*domain.SectionCmp, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SectionCmp), args.Error(1)
}

func (m *MockCatalogTx) UpsertElementCmp(ctx context.Context, element *domain.ElementCmp) (*domain.ElementCmp, error) {
	args := m.Called(ctx, element)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ElementCmp), args.Error(1)
}

func (m *MockCatalogTx) UpsertOptionCmp(ctx context.Context, option *domain.OptionCmp) (*domain.OptionCmp, error) {
	args := m.Called(ctx, option)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OptionCmp), args.Error(1)
}

func (m *MockCatalogTx) UpsertProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogTx) UpsertSection(ctx context.Context, section *domain.Section) (*domain.Section, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *MockCatalogTx) UpsertOption(ctx context.Context, option *domain.Option) (*domain.Option, error) {
	args := m.Called(ctx, option)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Option), args.Error(1)
}

func (m *MockCatalogTx) ReplaceDetails(ctx context.Context, productID int64, details []domain.Detail) ([]domain.Detail, error) {
	args := m.Called(ctx, productID, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Detail), args.Error(1)
}

type stubCatalogTxRunner struct {
	tx store.CatalogTx
}

func (r *stubCatalogTxRunner) RunCatalogTx(ctx context.Context, fn func(tx store.CatalogTx) error) error {
	return fn(r.tx)
}

// MockOrderTx is a mock implementation of store.OrderTx
type MockOrderTx struct {
	mock.Mock
}

func (m *MockOrderTx) DecrementStock(ctx context.Context, productID, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *MockOrderTx) InsertOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

type stubOrderTxRunner struct {
	tx store.OrderTx
}

func (r *stubOrderTxRunner) RunOrderTx(ctx context.Context, fn func(tx store.OrderTx) error) error {
	return fn(r.tx)
}

// recordingNotifier captures back-in-stock notifications for assertions.
type recordingNotifier struct {
	mu         sync.Mutex
	recipients []string
	productURL string
}

func (n *recordingNotifier) ProductBackInStock(ctx context.Context, recipients []string, productName, productURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recipients = append([]string(nil), recipients...)
	n.productURL = productURL
	return nil
}

// testMocks bundles every collaborator behind one test server.
type testMocks struct {
	catStore  *MockCategoryStorer
	prodStore *MockProductStorer
	assoc     *MockAssociationStorer
	catalogTx *MockCatalogTx
	orderTx   *MockOrderTx
	notifier  *recordingNotifier
}

// Helper for setting up tests with a chi router and handler
func setupTestChiServer(t *testing.T) (*httptest.Server, *testMocks) {
	m := &testMocks{
		catStore:  new(MockCategoryStorer),
		prodStore: new(MockProductStorer),
		assoc:     new(MockAssociationStorer),
		catalogTx: new(MockCatalogTx),
		orderTx:   new(MockOrderTx),
		notifier:  &recordingNotifier{},
	}

	writer := catalog.NewWriter(&stubCatalogTxRunner{tx: m.catalogTx})
	associations := catalog.NewAssociations(m.prodStore, m.assoc)
	assembler := order.NewAssembler(m.prodStore, order.NewResolver(m.catStore), &stubOrderTxRunner{tx: m.orderTx})

	handler := NewHTTPHandler(writer, associations, assembler, m.catStore, m.prodStore, m.notifier, "http://shop.test")
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return httptest.NewServer(router), m
}

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

func TestHTTPHandler_UpsertConfigurableCategory_Create(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	inputPayload := CategoryCmpUpsertInput{
		Name: "Bespoke Chairs",
		Sections: []SectionCmpInput{
			{Name: "Frame", Elements: []ElementCmpInput{
				{Name: "Color", Options: []OptionCmpInput{{Name: "Red", Price: 20}}},
			}},
		},
	}

	m.catalogTx.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Bespoke Chairs" && c.Mode == domain.CategoryModeCmp
	})).Return(&domain.Category{ID: 2, Name: "Bespoke Chairs", Mode: domain.CategoryModeCmp, AllowCreation: true}, nil).Once()
	m.catalogTx.On("UpsertSectionCmp", mock.Anything, mock.Anything).
		Return(&domain.SectionCmp{ID: 10, CategoryID: 2, Name: "Frame"}, nil).Once()
	m.catalogTx.On("UpsertElementCmp", mock.Anything, mock.Anything).
		Return(&domain.ElementCmp{ID: 20, SectionCmpID: 10, Name: "Color"}, nil).Once()
	m.catalogTx.On("UpsertOptionCmp", mock.Anything, mock.Anything).
		Return(&domain.OptionCmp{ID: 30, ElementCmpID: 20, Name: "Red", Price: 20}, nil).Once()

	reqBody, _ := json.Marshal(inputPayload)
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/categories/full-cmp", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusCreated, res.StatusCode, "Absent categoryId means create")

	var response CategoryCmpUpsertResponse
	err = json.NewDecoder(res.Body).Decode(&response)
	require.NoError(t, err)
	require.NotNil(t, response.Category)
	assert.Equal(t, int64(2), response.Category.ID)
	require.Len(t, response.Sections, 1)
	require.Len(t, response.Sections[0].Elements, 1)
	assert.Equal(t, int64(10), response.Sections[0].Elements[0].SectionCmpID)

	m.catalogTx.AssertExpectations(t)
}

func TestHTTPHandler_UpsertConfigurableCategory_EditUnknownCategory(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	m.catalogTx.On("GetCategoryByID", mock.Anything, int64(99)).Return(nil, store.ErrCategoryNotFound).Once()

	reqBody, _ := json.Marshal(CategoryCmpUpsertInput{Name: "Ghost"})
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/categories/full-cmp?categoryId=99", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	var errResp ErrorResponse
	err = json.NewDecoder(res.Body).Decode(&errResp)
	require.NoError(t, err)
	assert.Equal(t, store.ErrCategoryNotFound.Error(), errResp.Error)

	m.catalogTx.AssertExpectations(t)
	m.catalogTx.AssertNotCalled(t, "UpsertSectionCmp", mock.Anything, mock.Anything)
}

func TestHTTPHandler_UpsertConfigurableCategory_ValidationFailure(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	// Name is required on the category root.
	reqBody, _ := json.Marshal(CategoryCmpUpsertInput{Name: ""})
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/categories/full-cmp", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var errResp ErrorResponse
	err = json.NewDecoder(res.Body).Decode(&errResp)
	require.NoError(t, err)
	assert.Contains(t, errResp.Error, "Validation failed")

	m.catalogTx.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestHTTPHandler_UpsertRegularCategory_BlankSectionNameRejected(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	// Section and option names are required at the boundary; only element
	// names in the configurable tree may be blank placeholders.
	reqBody, _ := json.Marshal(CategoryUpsertInput{
		Name: "Sofas",
		Products: []ProductInput{
			{
				Name:     "Two-Seater",
				Value:    300,
				Quantity: 1,
				Sections: []SectionInput{{Name: ""}},
			},
		},
	})
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/categories/full-product", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var errResp ErrorResponse
	err = json.NewDecoder(res.Body).Decode(&errResp)
	require.NoError(t, err)
	assert.Contains(t, errResp.Error, "Validation failed")

	m.catalogTx.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	m.catalogTx.AssertNotCalled(t, "UpsertSection", mock.Anything, mock.Anything)
}

func TestHTTPHandler_UpsertRegularCategory_CreationNotAllowed(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	m.catalogTx.On("GetCategoryByID", mock.Anything, int64(3)).
		Return(&domain.Category{ID: 3, Name: "Armchairs", Mode: domain.CategoryModeRegular, AllowCreation: false}, nil).Once()
	m.catalogTx.On("UpdateCategory", mock.Anything, mock.Anything).
		Return(&domain.Category{ID: 3, Name: "Armchairs", Mode: domain.CategoryModeRegular, AllowCreation: false}, nil).Once()

	inputPayload := CategoryUpsertInput{
		Name:          "Armchairs",
		AllowCreation: PtrTo(false),
		Products:      []ProductInput{{Name: "Fresh Chair", Value: 10}},
	}
	reqBody, _ := json.Marshal(inputPayload)
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/categories/full-product?categoryId=3", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)

	m.catalogTx.AssertExpectations(t)
	m.catalogTx.AssertNotCalled(t, "UpsertProduct", mock.Anything, mock.Anything)
}

func TestHTTPHandler_UpsertRegularCategory_ModeMismatch(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	m.catalogTx.On("GetCategoryByID", mock.Anything, int64(2)).
		Return(&domain.Category{ID: 2, Name: "Bespoke Chairs", Mode: domain.CategoryModeCmp, AllowCreation: true}, nil).Once()

	reqBody, _ := json.Marshal(CategoryUpsertInput{Name: "Bespoke Chairs"})
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/categories/full-product?categoryId=2", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	var errResp ErrorResponse
	err = json.NewDecoder(res.Body).Decode(&errResp)
	require.NoError(t, err)
	assert.Equal(t, store.ErrCategoryModeMismatch.Error(), errResp.Error)

	m.catalogTx.AssertExpectations(t)
}

func TestHTTPHandler_GetCategoryByID_AttachesConfigurableTree(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	categoryID := int64(2)
	now := time.Now().Truncate(time.Millisecond)
	m.catStore.On("GetCategoryByID", mock.Anything, categoryID).
		Return(&domain.Category{ID: categoryID, Name: "Bespoke Chairs", Mode: domain.CategoryModeCmp, AllowCreation: true, CreatedAt: now, UpdatedAt: now}, nil).Once()
	m.catStore.On("GetConfigurableTree", mock.Anything, categoryID).
		Return([]domain.SectionCmp{{ID: 10, CategoryID: categoryID, Name: "Frame"}}, nil).Once()

	res, err := http.Get(server.URL + fmt.Sprintf("/api/v1/categories/%d", categoryID))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	var response CategoryTreeResponse
	err = json.NewDecoder(res.Body).Decode(&response)
	require.NoError(t, err)
	require.NotNil(t, response.Category)
	assert.Equal(t, categoryID, response.Category.ID)
	require.Len(t, response.Sections, 1)
	assert.Equal(t, "Frame", response.Sections[0].Name)

	m.catStore.AssertExpectations(t)
}

func TestHTTPHandler_GetCategoryByID_RegularSkipsTree(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	categoryID := int64(3)
	m.catStore.On("GetCategoryByID", mock.Anything, categoryID).
		Return(&domain.Category{ID: categoryID, Name: "Armchairs", Mode: domain.CategoryModeRegular, AllowCreation: true}, nil).Once()

	res, err := http.Get(server.URL + fmt.Sprintf("/api/v1/categories/%d", categoryID))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	m.catStore.AssertExpectations(t)
	m.catStore.AssertNotCalled(t, "GetConfigurableTree", mock.Anything, mock.Anything)
}

func TestHTTPHandler_ListCategories_InvalidMode(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	res, err := http.Get(server.URL + "/api/v1/categories?mode=weird")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	m.catStore.AssertNotCalled(t, "ListCategories", mock.Anything, mock.Anything)
}

func TestHTTPHandler_DeleteCategory_NotFound(t *testing.T) {
	server, m := setupTestChiServer(t)
	defer server.Close()

	categoryID := int64(99)
	m.catStore.On("DeleteCategory", mock.Anything, categoryID).Return(store.ErrCategoryNotFound).Once()

	req, err := http.NewRequest(http.MethodDelete, server.URL+fmt.Sprintf("/api/v1/categories/%d", categoryID), nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	var errResp ErrorResponse
	err = json.NewDecoder(res.Body).Decode(&errResp)
	require.NoError(t, err)
	assert.Equal(t, store.ErrCategoryNotFound.Error(), errResp.Error)

	m.catStore.AssertExpectations(t)
}
