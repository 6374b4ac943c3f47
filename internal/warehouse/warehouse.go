package warehouse

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	MinRating = 1
	MaxRating = 10
)

// Warehouse holds products in insertion order. It does no locking of its own;
// concurrent callers go through Service.
type Warehouse struct {
	products []*product
	now      func() time.Time
	log      *zap.Logger
}

func NewWarehouse(opts ...Option) *Warehouse {
	o := buildOptions(opts)
	return &Warehouse{
		products: make([]*product, 0, 16),
		now:      o.now,
		log:      o.log,
	}
}

func (w *Warehouse) Validate(name string, rating int) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "product name cannot be empty")
	}
	if rating < MinRating || rating > MaxRating {
		return invalid("rating", "product rating must be between 1 and 10")
	}
	return nil
}

func (w *Warehouse) ValidateID(id int) error {
	if id <= 0 {
		return invalid("id", "product id must be a positive number")
	}
	return nil
}

func (w *Warehouse) IDExists(id int) bool {
	return w.find(id) != nil
}

// CheckIDAvailable fails with ErrInvalidArgument when id is already taken.
func (w *Warehouse) CheckIDAvailable(id int) error {
	if w.IDExists(id) {
		return invalid("id", "product id already exists")
	}
	return nil
}

// Add appends a new product once every check has passed. On error the
// catalog is untouched.
func (w *Warehouse) Add(id int, name string, category Category, rating int, createdAt time.Time) error {
	if err := w.ValidateID(id); err != nil {
		return err
	}
	if err := w.Validate(name, rating); err != nil {
		return err
	}
	if err := w.CheckIDAvailable(id); err != nil {
		return err
	}

	p := newProduct(id, name, category, rating, createdAt.UTC())
	w.products = append(w.products, p)

	w.log.Debug("product added",
		zap.Int("id", id),
		zap.String("category", category.String()),
		zap.Int("count", len(w.products)),
	)
	return nil
}

func (w *Warehouse) All() []ProductRecord {
	return w.collect(func(*product) bool { return true })
}

func (w *Warehouse) Get(id int) (ProductRecord, bool) {
	p := w.find(id)
	if p == nil {
		return ProductRecord{}, false
	}
	return p.record(), true
}

// Update validates the new values before looking the product up, so invalid
// input is rejected even for unknown ids. A missing id yields false, nil.
func (w *Warehouse) Update(id int, name string, category Category, rating int) (bool, error) {
	if err := w.ValidateID(id); err != nil {
		return false, err
	}
	if err := w.Validate(name, rating); err != nil {
		return false, err
	}

	p := w.find(id)
	if p == nil {
		return false, nil
	}

	p.apply(name, category, rating, w.now().UTC())

	w.log.Debug("product updated", zap.Int("id", id), zap.Time("modified_at", p.modifiedAt))
	return true, nil
}

// ByCategorySortedByName orders by name ascending; equal names keep
// insertion order.
func (w *Warehouse) ByCategorySortedByName(category Category) []ProductRecord {
	out := w.collect(func(p *product) bool { return p.category == category })
	slices.SortStableFunc(out, func(a, b ProductRecord) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (w *Warehouse) CreatedAfter(t time.Time) []ProductRecord {
	return w.collect(func(p *product) bool { return p.createdAt.After(t) })
}

func (w *Warehouse) ModifiedSinceCreation() []ProductRecord {
	return w.collect(func(p *product) bool { return p.modifiedAt.After(p.createdAt) })
}

// CategoriesInUse returns each category carried by at least one product,
// sorted by tag.
func (w *Warehouse) CategoriesInUse() []Category {
	seen := make(map[Category]struct{}, len(w.products))
	out := make([]Category, 0, len(knownCategories))
	for _, p := range w.products {
		if _, ok := seen[p.category]; ok {
			continue
		}
		seen[p.category] = struct{}{}
		out = append(out, p.category)
	}
	slices.Sort(out)
	return out
}

func (w *Warehouse) CountInCategory(category Category) int {
	n := 0
	for _, p := range w.products {
		if p.category == category {
			n++
		}
	}
	return n
}

// NameInitialHistogram counts products by the first rune of their name, case
// as stored.
func (w *Warehouse) NameInitialHistogram() map[rune]int {
	out := make(map[rune]int)
	for _, p := range w.products {
		r, _ := utf8.DecodeRuneInString(p.name)
		out[r]++
	}
	return out
}

// TopRatedThisMonth returns max-rated products created in the current UTC
// calendar month, both month bounds inclusive, newest first.
func (w *Warehouse) TopRatedThisMonth() []ProductRecord {
	start, end := monthBounds(w.now())

	out := w.collect(func(p *product) bool {
		return p.rating == MaxRating &&
			!p.createdAt.Before(start) &&
			!p.createdAt.After(end)
	})
	slices.SortStableFunc(out, func(a, b ProductRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (w *Warehouse) Len() int { return len(w.products) }

func (w *Warehouse) find(id int) *product {
	for _, p := range w.products {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (w *Warehouse) collect(keep func(*product) bool) []ProductRecord {
	out := make([]ProductRecord, 0, len(w.products))
	for _, p := range w.products {
		if keep(p) {
			out = append(out, p.record())
		}
	}
	return out
}

func monthBounds(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
