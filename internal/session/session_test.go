package session

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/edgarsj/warehouse-cli/internal/cli"
	"github.com/edgarsj/warehouse-cli/internal/domain"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore counts snapshot writes instead of touching the filesystem.
type mockStore struct {
	saves int
	err   error
}

func (m *mockStore) SaveProducts(list *domain.ProductList) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	return nil
}

type testSession struct {
	session   *Session
	warehouse *domain.ProductList
	store     *mockStore
	out       *bytes.Buffer
	audit     *bytes.Buffer
}

func newTestSession(t *testing.T, warehouse *domain.ProductList, input string) *testSession {
	t.Helper()

	out := &bytes.Buffer{}
	auditOut := &bytes.Buffer{}
	store := &mockStore{}

	audit := hclog.New(&hclog.LoggerOptions{
		Name:   "audit",
		Level:  hclog.Info,
		Output: auditOut,
	})

	ask := cli.NewAsk(strings.NewReader(input), out, cli.NewValidation())
	display := cli.NewDisplay(out, time.UTC)

	return &testSession{
		session: New(warehouse, store, ask, display, out,
			hclog.NewNullLogger(), audit, "alice"),
		warehouse: warehouse,
		store:     store,
		out:       out,
		audit:     auditOut,
	}
}

func emptyWarehouse(t *testing.T) *domain.ProductList {
	t.Helper()
	list, err := domain.NewProductList(nil)
	require.NoError(t, err)
	return list
}

func TestAddProductThenReport(t *testing.T) {
	ts := newTestSession(t, emptyWarehouse(t), "0\nWidget\n5\n10\n5\n6\n")

	require.NoError(t, ts.session.Run())

	assert.Equal(t, 1, ts.warehouse.Len())
	assert.Equal(t, 1, ts.store.saves)

	p := ts.warehouse.Products()[0]
	assert.Equal(t, "Widget", p.Name())
	assert.Equal(t, 5, p.Quantity())
	assert.Equal(t, 10, p.Price())

	assert.Contains(t, ts.out.String(), "The warehouse is empty!")
	assert.Contains(t, ts.out.String(), "Warehouse")
	assert.Contains(t, ts.out.String(),
		"The total amount of products is 5 and the total sum is 50$")
	assert.Contains(t, ts.audit.String(), "added product to warehouse")
	assert.Contains(t, ts.audit.String(), "alice")
}

func TestEmptyWarehouseGuard(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"Delete", "1\n6\n"},
		{"Add stock", "2\n6\n"},
		{"Withdraw stock", "3\n6\n"},
		{"Update product", "4\n6\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestSession(t, emptyWarehouse(t), tc.input)

			require.NoError(t, ts.session.Run())
			assert.Contains(t, ts.out.String(),
				"You cannot do this as there are no products in the warehouse!")
			assert.Equal(t, 0, ts.store.saves)
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	warehouse := emptyWarehouse(t)
	p, err := domain.NewProduct("Widget", 10, 5)
	require.NoError(t, err)
	warehouse.Add(p)

	ts := newTestSession(t, warehouse, "1\n0\n6\n")

	require.NoError(t, ts.session.Run())

	assert.Equal(t, 0, ts.warehouse.Len())
	assert.Equal(t, 1, ts.store.saves)
	assert.Contains(t, ts.audit.String(), "deleted product from warehouse")
}

func TestAddAndWithdrawStock(t *testing.T) {
	warehouse := emptyWarehouse(t)
	p, err := domain.NewProduct("Widget", 10, 5)
	require.NoError(t, err)
	warehouse.Add(p)

	// add 3, withdraw 6 of the resulting 8
	ts := newTestSession(t, warehouse, "2\n0\n3\n3\n0\n6\n6\n")

	require.NoError(t, ts.session.Run())

	assert.Equal(t, 1, ts.warehouse.Len())
	assert.Equal(t, 2, ts.store.saves)
	assert.Equal(t, 2, p.Quantity())
	assert.Equal(t, 10, p.Price())
	assert.Contains(t, ts.audit.String(), "added stock to product")
	assert.Contains(t, ts.audit.String(), "withdrew stock from product")
}

func TestWithdrawFromEmptyStock(t *testing.T) {
	warehouse := emptyWarehouse(t)
	p, err := domain.NewProduct("Egg", 1, 0)
	require.NoError(t, err)
	warehouse.Add(p)

	ts := newTestSession(t, warehouse, "3\n0\n6\n")

	require.NoError(t, ts.session.Run())

	assert.Contains(t, ts.out.String(),
		"You cannot withdraw any of this product, as there is 0 of it in stock!")
	assert.Equal(t, 0, ts.store.saves)
	assert.Equal(t, 0, p.Quantity())
}

func TestUpdateProductPrice(t *testing.T) {
	warehouse := emptyWarehouse(t)
	p, err := domain.NewProduct("Widget", 10, 8)
	require.NoError(t, err)
	warehouse.Add(p)

	ts := newTestSession(t, warehouse, "4\n0\n0\n12\n6\n")

	require.NoError(t, ts.session.Run())

	assert.Equal(t, 12, p.Price())
	assert.Equal(t, 8, p.Quantity())
	assert.Equal(t, 1, ts.store.saves)
	assert.Contains(t, ts.audit.String(), "changed product property")
	assert.Contains(t, ts.audit.String(), "price")
}

func TestUpdateProductExpirationDate(t *testing.T) {
	warehouse := emptyWarehouse(t)
	p, err := domain.NewProduct("Milk", 2, 1)
	require.NoError(t, err)
	warehouse.Add(p)

	ts := newTestSession(t, warehouse, "4\n0\n1\n2030-06-01\n6\n")

	require.NoError(t, ts.session.Run())

	require.NotNil(t, p.ExpiresAt())
	assert.True(t, p.ExpiresAt().Equal(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, ts.store.saves)
}

func TestClosedInputEndsSession(t *testing.T) {
	ts := newTestSession(t, emptyWarehouse(t), "")

	assert.NoError(t, ts.session.Run())
}

func TestSaveFailureEndsSession(t *testing.T) {
	ts := newTestSession(t, emptyWarehouse(t), "0\nWidget\n5\n10\n6\n")
	ts.store.err = assert.AnError

	err := ts.session.Run()
	assert.ErrorIs(t, err, assert.AnError)
}
