package warehouse

import "time"

// ProductRecord is a point-in-time snapshot of a product. It is a plain value;
// nothing the catalog does later is visible through it.
type ProductRecord struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Category   Category  `json:"category"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Equal reports field equality, comparing timestamps as instants.
func (r ProductRecord) Equal(o ProductRecord) bool {
	return r.ID == o.ID &&
		r.Name == o.Name &&
		r.Category == o.Category &&
		r.Rating == o.Rating &&
		r.CreatedAt.Equal(o.CreatedAt) &&
		r.ModifiedAt.Equal(o.ModifiedAt)
}

type product struct {
	id         int
	name       string
	category   Category
	rating     int
	createdAt  time.Time
	modifiedAt time.Time
}

func newProduct(id int, name string, category Category, rating int, createdAt time.Time) *product {
	return &product{
		id:         id,
		name:       name,
		category:   category,
		rating:     rating,
		createdAt:  createdAt,
		modifiedAt: createdAt,
	}
}

// apply overwrites the mutable fields and stamps modifiedAt. modifiedAt never
// goes below createdAt even if the clock lags a caller-supplied createdAt.
func (p *product) apply(name string, category Category, rating int, now time.Time) {
	p.name = name
	p.category = category
	p.rating = rating
	if now.Before(p.createdAt) {
		now = p.createdAt
	}
	p.modifiedAt = now
}

func (p *product) record() ProductRecord {
	return ProductRecord{
		ID:         p.id,
		Name:       p.name,
		Category:   p.category,
		Rating:     p.rating,
		CreatedAt:  p.createdAt,
		ModifiedAt: p.modifiedAt,
	}
}
