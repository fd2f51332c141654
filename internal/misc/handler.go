package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/blogsapi/internal/telemetry/tracing"
	"github.com/2beens/blogsapi/pkg"
)

const healthCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db          pinger
	redisClient *redis.Client
	versionInfo string
}

// NewHandler creates the misc handler. redisClient is optional, when set the
// health check pings it too.
func NewHandler(
	db pinger,
	redisClient *redis.Client,
	versionInfo string,
) *Handler {
	return &Handler{
		db:          db,
		redisClient: redisClient,
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET").Name("root")
	mainRouter.HandleFunc("/health_check", handler.handleHealthCheck).Methods("GET").Name("health-check")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteResponse(w, pkg.ContentType.HTML, "<h1>Ciao mondo!</h1>", http.StatusOK)
}

func (handler *Handler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.healthCheck")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		log.Errorf("health check, ping db: %s", err)
		span.SetStatus(codes.Error, "db-ping-failed")
		pkg.WriteErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	if handler.redisClient != nil {
		if err := handler.redisClient.Ping(ctx).Err(); err != nil {
			log.Errorf("health check, ping redis: %s", err)
			span.SetStatus(codes.Error, "redis-ping-failed")
			pkg.WriteErrorResponse(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytes(w, "", nil, http.StatusOK)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
