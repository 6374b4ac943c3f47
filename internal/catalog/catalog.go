package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"Warehouse/internal/warehouse"
)

// Catalog is the operation set the HTTP layer drives. *warehouse.Service
// implements it.
type Catalog interface {
	Add(id int, name string, category warehouse.Category, rating int, createdAt time.Time) error
	All() []warehouse.ProductRecord
	Get(id int) (warehouse.ProductRecord, bool)
	Update(id int, name string, category warehouse.Category, rating int) (bool, error)
	ByCategorySortedByName(category warehouse.Category) []warehouse.ProductRecord
	CreatedAfter(t time.Time) []warehouse.ProductRecord
	ModifiedSinceCreation() []warehouse.ProductRecord
	CategoriesInUse() []warehouse.Category
	CountInCategory(category warehouse.Category) int
	NameInitialHistogram() map[rune]int
	TopRatedThisMonth() []warehouse.ProductRecord
	Len() int
}

var _ Catalog = (*warehouse.Service)(nil)

// RegisterCollectors exposes the current product count as a gauge sampled at
// scrape time.
func RegisterCollectors(reg prometheus.Registerer, namespace string, c Catalog) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Products currently held in the catalog",
		},
		func() float64 { return float64(c.Len()) },
	))
}
