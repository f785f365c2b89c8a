package domain

import (
	"fmt"
	"sort"
	"time"
)

// ProductList is the whole warehouse collection, keyed by product id. It is
// the single source of truth for the warehouse state and exclusively owns
// the products it holds.
type ProductList struct {
	products map[string]*Product
}

// NewProductList rebuilds the collection from previously persisted records.
// Ids and timestamps are preserved exactly. No records yields an empty list.
func NewProductList(records []ProductRecord) (*ProductList, error) {
	list := &ProductList{products: map[string]*Product{}}
	for _, rec := range records {
		p, err := ProductFromRecord(rec)
		if err != nil {
			return nil, err
		}
		list.products[p.ID()] = p
	}

	return list, nil
}

// Products returns the collection's products ordered by creation time, then
// id, so that display and snapshots are deterministic.
func (l *ProductList) Products() []*Product {
	products := make([]*Product, 0, len(l.products))
	for _, p := range l.products {
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt().Equal(products[j].CreatedAt()) {
			return products[i].CreatedAt().Before(products[j].CreatedAt())
		}
		return products[i].ID() < products[j].ID()
	})

	return products
}

func (l *ProductList) Len() int {
	return len(l.products)
}

// Add inserts the product under its id. An existing entry with the same id
// is silently replaced; last write wins. Only the legacy conversion path can
// produce a duplicate id, the interactive flow always generates fresh ones.
func (l *ProductList) Add(p *Product) {
	l.products[p.ID()] = p
}

// Delete removes the product from the collection. Deleting a product that is
// not present is a no-op.
func (l *ProductList) Delete(p *Product) {
	delete(l.products, p.ID())
}

// GetProductByID returns the product with the given id, or ErrProductNotFound
// when no such product exists.
func (l *ProductList) GetProductByID(id string) (*Product, error) {
	p, ok := l.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %s: %w", id, ErrProductNotFound)
	}
	return p, nil
}

// Records serializes every product in the collection, in Products() order,
// as the whole-collection snapshot written to storage.
func (l *ProductList) Records(loc *time.Location) []ProductRecord {
	products := l.Products()
	records := make([]ProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, p.Record(loc))
	}

	return records
}
