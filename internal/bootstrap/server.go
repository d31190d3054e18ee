package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	appraisalapp "github.com/mohammadpnp/appraisal-import/internal/application/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/application/enrichment"
	rosterapp "github.com/mohammadpnp/appraisal-import/internal/application/roster"
	runapp "github.com/mohammadpnp/appraisal-import/internal/application/run"
	"github.com/mohammadpnp/appraisal-import/internal/config"
	appraisaldomain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/geocode"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/invite"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/progress"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/appraisal-import/internal/interfaces/http/echo"
)

const outboundTimeout = 30 * time.Second

type Dependencies struct {
	Config   config.Config
	Log      *logrus.Logger
	DB       *gorm.DB
	Pool     *pgxpool.Pool
	Progress *progress.RedisStore
}

// Server is the HTTP surface plus the background machinery it starts runs on.
// Enrichment is nil when no geocode endpoint is configured.
type Server struct {
	Echo       *echo.Echo
	Tracker    *runapp.Tracker
	Enrichment *enrichment.Queue
}

// NewHTTPServer wires every use case. Runs started through the server are
// bound to ctx, not to the request that started them.
func NewHTTPServer(ctx context.Context, deps Dependencies) *Server {
	cfg := deps.Config
	log := deps.Log
	httpClient := &http.Client{Timeout: outboundTimeout}

	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(httpecho.RequestLogger(log))
	server.Use(middleware.BodyLimit(cfg.MaxUploadSize))

	var queue *enrichment.Queue
	var enrich appraisaldomain.EnrichmentQueue
	if cfg.Enrichment.Enabled() {
		geocoder := geocode.NewClient(cfg.Enrichment.GeocodeURL, cfg.FunctionsToken, httpClient)
		queue = enrichment.NewQueue(geocoder, enrichment.Config{
			Workers:   cfg.Enrichment.Workers,
			QueueSize: cfg.Enrichment.QueueSize,
			Timeout:   cfg.Enrichment.Timeout,
		}, log)
		enrich = queue
	}

	runRepo := repository.NewImportRunRepository(deps.DB)
	tracker := runapp.NewTracker(ctx, runRepo, deps.Progress, log)

	importer := appraisalapp.NewImportAppraisals(
		repository.NewAppraisalKeyRepository(deps.DB),
		repository.NewAppraisalChunkRepository(deps.Pool),
		enrich,
		appraisalapp.ImportConfig{ChunkSize: cfg.Import.ChunkSize},
		log,
	)
	appraisalHandler := httpecho.NewAppraisalHandler(appraisalapp.NewPreviewAppraisals(), importer, tracker)

	dispatcher := rosterapp.NewDispatcher(invite.NewClient(cfg.Invite.URL, cfg.FunctionsToken, httpClient), rosterapp.Config{
		Delay:         cfg.Invite.Delay,
		RatePerSecond: cfg.Invite.RatePerSecond,
		Burst:         cfg.Invite.Burst,
	}, log)
	directory := repository.NewDirectoryRepository(deps.DB)
	rosterHandler := httpecho.NewRosterHandler(
		rosterapp.NewParseRoster(directory),
		rosterapp.NewInviteSelected(directory, dispatcher),
		tracker,
	)

	runHandler := httpecho.NewRunHandler(runapp.NewGetRun(runRepo, deps.Progress, log))

	httpecho.RegisterRoutes(server, httpecho.Handlers{
		Appraisals: appraisalHandler,
		Rosters:    rosterHandler,
		Runs:       runHandler,
		Health: map[string]httpecho.HealthCheck{
			"postgres": deps.Pool.Ping,
			"redis":    deps.Progress.Ping,
		},
	})

	return &Server{Echo: server, Tracker: tracker, Enrichment: queue}
}
