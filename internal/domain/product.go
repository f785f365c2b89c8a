package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a single warehouse line item. Identity and name are fixed at
// creation; price, quantity and expiration change only through Update.
// All timestamps are kept in UTC, truncated to second precision so that a
// product survives a serialization round trip without losing information.
type Product struct {
	id        string
	name      string
	price     int
	quantity  int
	createdAt time.Time
	updatedAt time.Time
	expiresAt *time.Time
}

// NewProduct creates a product with a fresh identity and both timestamps set
// to the current UTC time. The product has no expiration until one is set
// through Update.
func NewProduct(name string, price, quantity int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := time.Now().UTC().Truncate(time.Second)
	return &Product{
		id:        uuid.NewString(),
		name:      name,
		price:     price,
		quantity:  quantity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() int {
	return p.price
}

func (p *Product) Quantity() int {
	return p.quantity
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// ExpiresAt returns the expiration time, or nil when the product does not
// expire.
func (p *Product) ExpiresAt() *time.Time {
	if p.expiresAt == nil {
		return nil
	}
	t := *p.expiresAt
	return &t
}

// NullableTime is a time that may explicitly be "none", mirroring
// sql.NullTime.
type NullableTime struct {
	Time  time.Time
	Valid bool
}

// ProductPatch is a partial update request. A nil field leaves the current
// value unchanged. ExpiresAt distinguishes "leave unchanged" (nil) from
// "explicitly clear" (non-nil with Valid false).
type ProductPatch struct {
	Price     *int
	Quantity  *int
	ExpiresAt *NullableTime
}

// Update applies the patch and refreshes the update timestamp, whether or not
// any value actually changed. Range validation happens before a patch is
// built; Update trusts its input.
func (p *Product) Update(patch ProductPatch) {
	if patch.Price != nil {
		p.price = *patch.Price
	}
	if patch.Quantity != nil {
		p.quantity = *patch.Quantity
	}
	if patch.ExpiresAt != nil {
		if patch.ExpiresAt.Valid {
			t := patch.ExpiresAt.Time.UTC().Truncate(time.Second)
			p.expiresAt = &t
		} else {
			p.expiresAt = nil
		}
	}

	p.updatedAt = time.Now().UTC().Truncate(time.Second)
}
