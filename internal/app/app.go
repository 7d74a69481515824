// Package app assembles repositories, services and HTTP routes.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"promoservice/internal/config"
	"promoservice/internal/database"
	"promoservice/internal/domain/advertisement"
	"promoservice/internal/domain/order"
	"promoservice/internal/domain/promotion"
	"promoservice/internal/middleware"
	"promoservice/internal/peer"
	"promoservice/internal/peer/clicklog"
	"promoservice/internal/peer/product"
)

// Peers are the outbound service clients used by the advertisement service.
type Peers struct {
	Products advertisement.ProductLookup
	Clicks   advertisement.ClickLogger
}

// NewPeers builds HTTP clients for the product and logging services.
func NewPeers(cfg *config.Config) Peers {
	httpClient := peer.NewHTTPClient(cfg.PeerTimeout)
	return Peers{
		Products: product.NewClient(cfg.ProductServiceURL, httpClient),
		Clicks:   clicklog.NewClient(cfg.LoggingServiceURL, httpClient),
	}
}

// EnsureSchema prepares tables or indexes for every resource.
func EnsureSchema(ctx context.Context, store *database.Store) error {
	steps := []func(context.Context, *database.Store) error{
		advertisement.EnsureSchema,
		promotion.EnsureSchema,
		order.EnsureSchema,
	}
	for _, step := range steps {
		if err := step(ctx, store); err != nil {
			return err
		}
	}
	return nil
}

// NewRouter wires the public API.
func NewRouter(cfg *config.Config, store *database.Store, peers Peers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		// inside Metrics and AccessLog so recovered panics are counted as 500s
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adRepo := advertisement.NewRepository(store, time.Now)
	adService := advertisement.NewService(adRepo, peers.Products, peers.Clicks, time.Now)
	advertisement.RegisterRoutes(r, advertisement.NewHandler(adService))

	promoService := promotion.NewService(promotion.NewRepository(store), time.Now)
	promotion.RegisterRoutes(r, promotion.NewHandler(promoService))

	orderService := order.NewService(order.NewRepository(store, time.Now))
	order.RegisterRoutes(r, order.NewHandler(orderService))

	return r
}

// NewAdminHandler serves /metrics and /readyz. It is meant for a
// loopback or cluster-internal listener.
func NewAdminHandler(store *database.Store) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	return mux
}
