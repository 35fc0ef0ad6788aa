package http

import (
	"context"
	"log/slog"
	"time"

	"eventbooking/internal/cache"
	"eventbooking/internal/config"
	"eventbooking/internal/http/handlers"
	"eventbooking/internal/http/middlewares"
	"eventbooking/internal/media"
	"eventbooking/internal/observability"
	"eventbooking/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	jsonBodyLimit      = 1 << 20  // 1 MiB for JSON payloads
	multipartBodyLimit = 10 << 20 // event creation carries an image
)

func NewRouter(
	cfg config.Config,
	log *slog.Logger,
	pool *pgxpool.Pool,
	prom *observability.Prom,
	reg *prometheus.Registry,
	store cache.Store,
	uploader media.Uploader,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware([]string{"http://localhost:3000"}))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("eventbooking"))
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// repositories
	eventsRepo := postgres.NewEventsRepo(pool, prom)
	bookingsRepo := postgres.NewBookingsRepo(pool, eventsRepo, prom)

	eventsHandler := handlers.NewEventsHandlerWithCache(eventsRepo, uploader, cfg.MediaBucket, store)
	bookingsHandler := handlers.NewBookingsHandler(bookingsRepo)

	requireJSON := middlewares.RequireJSON()
	jsonBody := middlewares.MaxBodyBytes(jsonBodyLimit)
	bookingLimiter := middlewares.NewRateLimiter(30, time.Minute)

	// events
	r.POST("/events", middlewares.MaxBodyBytes(multipartBodyLimit), eventsHandler.CreateEvent)
	r.GET("/events", eventsHandler.ListEvents)
	r.GET("/events/:id", eventsHandler.GetEventByID)
	r.PUT("/events/:id", jsonBody, requireJSON, eventsHandler.UpdateEvent)
	r.DELETE("/events/:id", eventsHandler.DeleteEvent)

	// bookings
	r.POST("/events/:id/bookings", jsonBody, requireJSON, bookingLimiter.Middleware(), bookingsHandler.CreateBooking)
	r.GET("/events/:id/bookings", bookingsHandler.ListBookings)
	r.GET("/events/:id/bookings/:bookingId", bookingsHandler.GetBooking)
	r.DELETE("/events/:id/bookings/:bookingId", bookingsHandler.CancelBooking)

	return r
}
