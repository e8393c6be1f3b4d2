package app

import (
	"log/slog"

	httpapp "listing_exchange/internal/app/http"
	"listing_exchange/internal/config"
	"listing_exchange/internal/httpapi/matchhttp"
	"listing_exchange/internal/lib/jsonld"
	"listing_exchange/internal/lib/metrics"
	"listing_exchange/internal/lib/notify"
	"listing_exchange/internal/repository/criteria_repository"
	"listing_exchange/internal/repository/listing_repository"
	"listing_exchange/internal/repository/notification_repository"
	"listing_exchange/internal/services/criteria"
	"listing_exchange/internal/services/hotsheet"
	"listing_exchange/internal/services/listing"
	"listing_exchange/internal/services/prospecting"

	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	HTTPServer   *httpapp.App
	MatchMetrics *metrics.MatchMetrics
}

func New(log *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) *App {
	listingRepository := listing_repository.NewListingRepository(pool, log)
	criteriaRepository := criteria_repository.NewCriteriaRepository(pool, log)
	notificationRepository := notification_repository.NewNotificationRepository(pool, log)

	matchMetrics := metrics.New(log)

	// Очередь уведомлений; при NOTIFY_ENABLE=false задания только считаются
	queue := notify.NewQueue(cfg.Notify, notificationRepository, log)

	log.Info("matching services initialized",
		slog.Bool("notify_enabled", queue.IsEnabled()),
		slog.Int("candidate_limit", cfg.Matching.CandidateLimit),
		slog.Int("refresh_concurrency", cfg.Matching.RefreshConcurrency),
	)

	listingService := listing.New(log, listingRepository)
	criteriaService := criteria.New(log, criteriaRepository)
	hotSheetService := hotsheet.New(log, criteriaRepository, listingRepository, matchMetrics, cfg.Matching)
	prospectingService := prospecting.New(log, listingRepository, criteriaRepository, queue, matchMetrics, cfg.Matching)

	httpApp := httpapp.New(log, cfg.HTTP, cfg.CORS,
		matchhttp.Services{
			Listings:    listingService,
			Criteria:    criteriaService,
			HotSheets:   hotSheetService,
			Prospecting: prospectingService,
		},
		matchhttp.WithJSONLD(jsonld.NewGenerator(cfg.HTTP.PublicURL)),
	)

	return &App{
		HTTPServer:   httpApp,
		MatchMetrics: matchMetrics,
	}
}
