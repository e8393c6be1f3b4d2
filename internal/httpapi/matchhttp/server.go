package matchhttp

import (
	"context"
	"log/slog"
	"net/http"

	"listing_exchange/internal/config"
	"listing_exchange/internal/domain"
	"listing_exchange/internal/lib/jsonld"
	"listing_exchange/internal/services/hotsheet"
	"listing_exchange/internal/services/matching"
	"listing_exchange/internal/services/prospecting"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// ListingService описывает работу с объявлениями.
type ListingService interface {
	CreateListing(ctx context.Context, l domain.Listing) (uuid.UUID, error)
	GetListing(ctx context.Context, id uuid.UUID) (domain.Listing, error)
	UpdateListing(ctx context.Context, id uuid.UUID, update domain.ListingFilter) (domain.Listing, error)
	ListListings(ctx context.Context, filter domain.ListingFilter) (*domain.PaginatedResult[domain.Listing], error)
}

// CriteriaService описывает работу с потребностями покупателей и hot sheet.
type CriteriaService interface {
	CreateCriteria(ctx context.Context, c domain.Criteria) (uuid.UUID, error)
	GetCriteria(ctx context.Context, id uuid.UUID) (domain.Criteria, error)
	UpdateCriteria(ctx context.Context, id uuid.UUID, update domain.CriteriaFilter) (domain.Criteria, error)
	ListCriteria(ctx context.Context, filter domain.CriteriaFilter) (*domain.PaginatedResult[domain.Criteria], error)
}

type HotSheetService interface {
	Matches(ctx context.Context, hotSheetID uuid.UUID) (matching.Result[domain.Listing], error)
	RefreshCounts(ctx context.Context, ids []uuid.UUID) ([]hotsheet.Count, error)
}

type ProspectingService interface {
	Prospects(ctx context.Context, listingID uuid.UUID) (matching.Result[domain.Criteria], error)
	NotifyProspects(ctx context.Context, listingID uuid.UUID) (prospecting.NotifyResult, error)
}

// Services — зависимости HTTP API.
type Services struct {
	Listings    ListingService
	Criteria    CriteriaService
	HotSheets   HotSheetService
	Prospecting ProspectingService
}

type serverAPI struct {
	log    *slog.Logger
	svc    Services
	jsonld *jsonld.Generator
}

// RouterOption — опция для конфигурации роутера.
type RouterOption func(*serverAPI)

// WithJSONLD включает маршруты .../jsonld с разметкой schema.org.
func WithJSONLD(gen *jsonld.Generator) RouterOption {
	return func(s *serverAPI) {
		s.jsonld = gen
	}
}

// NewRouter собирает роутер API: middleware, CORS, маршруты и Swagger UI.
func NewRouter(log *slog.Logger, corsCfg config.CORSConfig, svc Services, opts ...RouterOption) http.Handler {
	s := &serverAPI{log: log, svc: svc}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/listings", func(r chi.Router) {
			r.Post("/", s.createListing)
			r.Get("/", s.listListings)
			r.Get("/{id}", s.getListing)
			r.Patch("/{id}", s.updateListing)
			r.Get("/{id}/prospects", s.listingProspects)
			r.Post("/{id}/prospects/notify", s.notifyProspects)
			if s.jsonld != nil {
				r.Get("/{id}/jsonld", s.listingJSONLD)
			}
		})
		r.Route("/criteria", func(r chi.Router) {
			r.Post("/", s.createCriteria)
			r.Get("/", s.listCriteria)
			r.Get("/{id}", s.getCriteria)
			r.Patch("/{id}", s.updateCriteria)
			if s.jsonld != nil {
				r.Get("/{id}/jsonld", s.criteriaJSONLD)
			}
		})
		r.Get("/hotsheets/{id}/matches", s.hotSheetMatches)
		if s.jsonld != nil {
			r.Get("/hotsheets/{id}/matches/jsonld", s.hotSheetMatchesJSONLD)
		}
		r.Post("/hotsheets/counts", s.hotSheetCounts)
		r.Post("/match/evaluate", s.evaluate)
		r.Post("/match/count", s.count)
	})

	mountDocs(r)

	return r
}
