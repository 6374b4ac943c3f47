package warehouse

import (
	"sync"
	"time"
)

// Service serializes every catalog operation, reads included, behind one
// mutex. Build one per process and hand it to whoever needs the catalog.
type Service struct {
	mu sync.Mutex
	w  *Warehouse
}

func NewService(opts ...Option) *Service {
	return &Service{w: NewWarehouse(opts...)}
}

func (s *Service) Validate(name string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Validate(name, rating)
}

func (s *Service) ValidateID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.ValidateID(id)
}

func (s *Service) IDExists(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.IDExists(id)
}

func (s *Service) CheckIDAvailable(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.CheckIDAvailable(id)
}

func (s *Service) Add(id int, name string, category Category, rating int, createdAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Add(id, name, category, rating, createdAt)
}

func (s *Service) All() []ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.All()
}

func (s *Service) Get(id int) (ProductRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Get(id)
}

func (s *Service) Update(id int, name string, category Category, rating int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Update(id, name, category, rating)
}

func (s *Service) ByCategorySortedByName(category Category) []ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.ByCategorySortedByName(category)
}

func (s *Service) CreatedAfter(t time.Time) []ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.CreatedAfter(t)
}

func (s *Service) ModifiedSinceCreation() []ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.ModifiedSinceCreation()
}

func (s *Service) CategoriesInUse() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.CategoriesInUse()
}

func (s *Service) CountInCategory(category Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.CountInCategory(category)
}

func (s *Service) NameInitialHistogram() map[rune]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.NameInitialHistogram()
}

func (s *Service) TopRatedThisMonth() []ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.TopRatedThisMonth()
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Len()
}
