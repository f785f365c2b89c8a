package domain

import (
	"fmt"
	"time"
)

// ProductRecord is the persisted shape of a product. Timestamps are RFC3339
// strings rendered in the snapshot timezone. ExpiresAt is null for products
// without an expiration, never omitted.
type ProductRecord struct {
	Name      string  `json:"name"`
	Price     int     `json:"price"`
	Quantity  int     `json:"quantity"`
	ID        string  `json:"id"`
	ExpiresAt *string `json:"expiresAt"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// Record converts the product to its persisted shape, localizing timestamps
// to the given zone. Internal state stays in UTC.
func (p *Product) Record(loc *time.Location) ProductRecord {
	rec := ProductRecord{
		Name:      p.name,
		Price:     p.price,
		Quantity:  p.quantity,
		ID:        p.id,
		CreatedAt: p.createdAt.In(loc).Format(time.RFC3339),
		UpdatedAt: p.updatedAt.In(loc).Format(time.RFC3339),
	}
	if p.expiresAt != nil {
		s := p.expiresAt.In(loc).Format(time.RFC3339)
		rec.ExpiresAt = &s
	}

	return rec
}

// ProductFromRecord rebuilds a product from a persisted record, preserving
// its id and timestamps verbatim. Unlike NewProduct it performs no range
// validation; whatever was persisted is taken as-is.
func ProductFromRecord(rec ProductRecord) (*Product, error) {
	createdAt, err := parseTimestamp(rec.CreatedAt, "createdAt", rec.ID)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTimestamp(rec.UpdatedAt, "updatedAt", rec.ID)
	if err != nil {
		return nil, err
	}

	p := &Product{
		id:        rec.ID,
		name:      rec.Name,
		price:     rec.Price,
		quantity:  rec.Quantity,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}

	if rec.ExpiresAt != nil {
		expiresAt, err := parseTimestamp(*rec.ExpiresAt, "expiresAt", rec.ID)
		if err != nil {
			return nil, err
		}
		p.expiresAt = &expiresAt
	}

	return p, nil
}

func parseTimestamp(value, field, id string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s of product %q: %w", field, id, err)
	}
	return t.UTC(), nil
}
