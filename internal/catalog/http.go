package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Warehouse/internal/events"
	"Warehouse/internal/warehouse"
	"Warehouse/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Server struct {
	Catalog Catalog
	Events  events.Publisher
	Log     *zap.Logger
	Now     func() time.Time
}

type createReq struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Rating    int        `json:"rating"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type updateReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

type countResp struct {
	Category warehouse.Category `json:"category"`
	Count    int                `json:"count"`
}

var errFutureCreatedAt = errors.New("created_at must not be in the future")

func (s *Server) routes(r chi.Router, writeLimiter *kit.IPRateLimiter) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	limit := func(next http.Handler) http.Handler { return next }
	if writeLimiter != nil {
		limit = writeLimiter.Middleware
	}

	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", s.list)
		pr.With(limit).Post("/", s.create)
		pr.Get("/category/{category}", s.byCategory)
		pr.Get("/created-after", s.createdAfter)
		pr.Get("/modified", s.modified)
		pr.Get("/top-rated", s.topRated)
		pr.Get("/{id}", s.get)
		pr.With(limit).Put("/{id}", s.update)
	})

	r.Get("/categories", s.categories)
	r.Get("/categories/{category}/count", s.countInCategory)
	r.Get("/stats/initials", s.initials)
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.publisher().Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	category, err := warehouse.ParseCategory(req.Category)
	if err != nil {
		s.writeInvalid(w, r, err)
		return
	}

	now := s.now()
	createdAt := now
	if req.CreatedAt != nil {
		if req.CreatedAt.After(now) {
			kit.WriteError(w, r, http.StatusBadRequest, "invalid argument",
				map[string]any{"field": "created_at", "reason": errFutureCreatedAt.Error()})
			return
		}
		createdAt = *req.CreatedAt
	}

	if err := s.Catalog.Add(req.ID, req.Name, category, req.Rating, createdAt); err != nil {
		s.writeInvalid(w, r, err)
		return
	}

	p, ok := s.Catalog.Get(req.ID)
	if !ok {
		s.logger().Error("added product not found", zap.Int("id", req.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "failed to retrieve added product", nil)
		return
	}

	s.logger().Info("product added", zap.Int("id", p.ID), zap.String("category", p.Category.String()))
	s.publish(r.Context(), events.ProductCreated, p)
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.All())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	p, found := s.Catalog.Get(id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	var req updateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	category, err := warehouse.ParseCategory(req.Category)
	if err != nil {
		s.writeInvalid(w, r, err)
		return
	}

	updated, err := s.Catalog.Update(id, req.Name, category, req.Rating)
	if err != nil {
		s.writeInvalid(w, r, err)
		return
	}
	if !updated {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	p, found := s.Catalog.Get(id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	s.publish(r.Context(), events.ProductUpdated, p)
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) byCategory(w http.ResponseWriter, r *http.Request) {
	category, err := warehouse.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeInvalid(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.ByCategorySortedByName(category))
}

func (s *Server) createdAfter(w http.ResponseWriter, r *http.Request) {
	since, err := time.Parse(time.RFC3339Nano, r.URL.Query().Get("since"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid argument",
			map[string]any{"field": "since", "reason": "expected an RFC 3339 timestamp"})
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.CreatedAfter(since))
}

func (s *Server) modified(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.ModifiedSinceCreation())
}

func (s *Server) topRated(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.TopRatedThisMonth())
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.CategoriesInUse())
}

func (s *Server) countInCategory(w http.ResponseWriter, r *http.Request) {
	category, err := warehouse.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeInvalid(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, countResp{Category: category, Count: s.Catalog.CountInCategory(category)})
}

func (s *Server) initials(w http.ResponseWriter, r *http.Request) {
	hist := s.Catalog.NameInitialHistogram()
	out := make(map[string]int, len(hist))
	for initial, n := range hist {
		out[string(initial)] = n
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid argument",
			map[string]any{"field": "id", "reason": "product id must be an integer"})
		return 0, false
	}
	return id, true
}

func (s *Server) writeInvalid(w http.ResponseWriter, r *http.Request, err error) {
	var verr *warehouse.ValidationError
	switch {
	case errors.As(err, &verr):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid argument",
			map[string]any{"field": verr.Field, "reason": verr.Reason})
	case errors.Is(err, warehouse.ErrInvalidArgument):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid argument", nil)
	default:
		s.logger().Error("catalog operation failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

// publish is best effort: the catalog change has already happened.
func (s *Server) publish(ctx context.Context, t events.Type, p warehouse.ProductRecord) {
	if err := s.publisher().Publish(ctx, events.New(t, p)); err != nil {
		s.logger().Warn("publish event failed",
			zap.Error(err),
			zap.String("type", string(t)),
			zap.Int("product_id", p.ID),
		)
	}
}

func (s *Server) publisher() events.Publisher {
	if s.Events == nil {
		return events.NopPublisher{}
	}
	return s.Events
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
