// cmd/server/server.go
package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/bravok9/k9booking/internal/api"
	"github.com/bravok9/k9booking/internal/api/bookings"
	"github.com/bravok9/k9booking/internal/api/checkout"
	"github.com/bravok9/k9booking/internal/api/pricing"
	"github.com/bravok9/k9booking/internal/config"
	appdb "github.com/bravok9/k9booking/internal/db"
	"github.com/bravok9/k9booking/internal/email"
	"github.com/bravok9/k9booking/internal/payments"
	"github.com/bravok9/k9booking/internal/ratelimit"
)

const shutdownTimeout = 30 * time.Second

func newServer(cfg *config.Config, database *appdb.DB, sender email.EmailSender, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	checkoutClient := payments.NewCheckoutClient(
		cfg.Stripe.SecretKey,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		cfg.Stripe.ProductName,
	)

	bookings.InitHandlers(database, sender, cfg.App.AdminTokenHash)
	checkout.InitHandlers(checkoutClient, limiter)
	pricing.InitHandlers(cfg.Booking.RatePerHour)

	registerRoutes(router, cfg)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	origins := cfg.App.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(handler)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Booking API
	mux.HandleFunc("/api/config", pricing.HandleConfig)
	mux.HandleFunc("/api/bookings", bookings.HandleBookings)
	mux.HandleFunc("/api/create-checkout-session", checkout.HandleCreateCheckoutSession)

	// Static client with index fallback for client-side routes
	staticDir := cfg.App.StaticDir
	if envDir := os.Getenv("STATIC_DIR"); envDir != "" {
		staticDir = envDir
	}
	if staticDir == "" {
		staticDir = "client"
	}
	mux.Handle("/", staticHandler(staticDir))
}

// staticHandler serves files from dir and falls back to index.html for
// unknown non-API paths.
func staticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		requested := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if r.URL.Path == "/" {
			fs.ServeHTTP(w, r)
			return
		}

		log.Debug().Str("path", r.URL.Path).Msg("Serving index fallback")
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})
}
