package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/api"
	"github.com/lawmasters-app/lawmasters/appstate"
	"github.com/lawmasters-app/lawmasters/config"
	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/notifications"
	"github.com/lawmasters-app/lawmasters/workers/analysis"
	"github.com/lawmasters-app/lawmasters/workers/meili"
	"github.com/lawmasters-app/lawmasters/workers/reminders"
)

func main() {
	cfg := config.Get()

	// Initialize database
	_ = db.GetDB()
	log.Info().Str("path", cfg.DatabasePath).Msg("database initialized")

	// Event fan-out for SSE/websocket clients
	notifService := notifications.NewService()

	// Session store: persisted subset lives in the settings table, every
	// mutation is broadcast to connected clients, and dark-mode flips are
	// pushed as display-mode events so all open tabs follow
	store := appstate.New(appstate.Options{
		Persister: db.NewAppStatePersister(),
		ApplyMode: func(dark bool) error {
			notifService.NotifyDisplayMode(dark)
			return nil
		},
	})
	store.Subscribe(func(snap appstate.Snapshot) {
		notifService.NotifyStoreChanged(snap)
	})

	// Set Gin to release mode to disable its default debug logging
	// We use our own zerolog-based request logger instead
	gin.SetMode(gin.ReleaseMode)

	// Create Gin router
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())

	// Request logging middleware (uses zerolog)
	r.Use(log.GinLogger())

	// Compress API responses; event streams are exempt
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/api/appstate/stream", "/api/appstate/ws"})))

	// CORS for development
	if cfg.IsDevelopment() {
		r.Use(api.CORSMiddleware())
	}

	// Security headers (production only)
	if !cfg.IsDevelopment() {
		r.Use(api.SecurityHeadersMiddleware())
	}

	r.SetTrustedProxies(nil)

	// Ignore .well-known requests (Chrome DevTools, etc.)
	r.GET("/.well-known/*path", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	// Background workers
	meiliSync := meili.NewSyncWorker()
	analysisWorker := analysis.NewWorker(cfg.AnalysisWorkers, notifService)
	reminderWorker := reminders.NewWorker(store, notifService, cfg.ReminderWindowHours, reminders.Options{})

	// Setup API routes
	handlers := api.NewHandlers(store, notifService, meiliSync, analysisWorker)
	api.SetupRoutes(r, handlers)

	log.Info().Msg("starting background workers")
	meiliSync.Start()
	analysisWorker.Start()
	reminderWorker.Start()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server
	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.Env).
			Msg("server starting")

		printNetworkAddresses(cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Stop workers first (they may hold db connections)
	reminderWorker.Stop()
	analysisWorker.Stop()
	meiliSync.Stop()

	// Shutdown notification service to close all SSE connections
	notifService.Shutdown()

	// Shutdown server with timeout to close remaining HTTP connections
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	// Flush any pending session-store write before the db goes away
	store.Close()

	// Close database
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("database close error")
	}

	log.Info().Msg("server stopped")
}

func printNetworkAddresses(port int) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return
	}

	var addresses []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok {
				if ip4 := ipnet.IP.To4(); ip4 != nil {
					addresses = append(addresses, fmt.Sprintf("http://%s:%d", ip4.String(), port))
				}
			}
		}
	}

	for _, addr := range addresses {
		log.Info().Str("url", addr).Msg("network")
	}
}
