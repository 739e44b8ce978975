package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"billpay-settlement/internal/config"
	"billpay-settlement/internal/handler"
	"billpay-settlement/internal/middleware"
	"billpay-settlement/internal/model"
	"billpay-settlement/internal/repository"
	"billpay-settlement/internal/service"
	"billpay-settlement/internal/store"
	"billpay-settlement/pkg/logger"
)

var Version = "dev"

const retentionInterval = time.Hour

func main() {
	rootCmd := &cobra.Command{
		Use:          "billpay-settlement",
		Short:        "Settles verified bill payments through the vendor",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(syncCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the settlement HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Match catalog products to vendor operators and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			return syncOnce(cmd.Context(), model.ParseSyncMode(mode), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("mode", "m", string(model.SyncFillGaps), "Sync mode (fill, full)")

	return cmd
}

// components is the wired service graph shared by every command
type components struct {
	cfg        *config.Config
	logger     *logger.Logger
	catalog    *store.CatalogStore
	pricing    *service.PricingEngine
	vendor     *service.ReloadlyService
	catalogSvc *service.CatalogService
}

func setup() (*components, error) {
	if err := ensureEnvFile(); err != nil {
		log.Printf("Warning: Failed to create .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	catalog, err := store.NewCatalogStore(store.DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	pricing, err := service.NewPricingEngine(cfg.Markup.ByCategory(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pricing: %w", err)
	}
	pricing.PriceCatalog(catalog)

	authenticator := service.NewReloadlyAuthenticator(&cfg.Reloadly, appLogger)
	tokens := service.NewTokenCache(authenticator, cfg.Reloadly.TopupsAudience, cfg.Reloadly.TokenBuffer, appLogger)
	vendor := service.NewReloadlyService(&cfg.Reloadly, tokens, appLogger)

	synchronizer := service.NewSynchronizer(vendor, catalog, cfg.Reloadly.Timeout, appLogger)

	return &components{
		cfg:        cfg,
		logger:     appLogger,
		catalog:    catalog,
		pricing:    pricing,
		vendor:     vendor,
		catalogSvc: service.NewCatalogService(catalog, synchronizer, pricing, appLogger),
	}, nil
}

func syncOnce(ctx context.Context, mode model.SyncMode, out io.Writer) error {
	c, err := setup()
	if err != nil {
		return err
	}

	result, err := c.catalogSvc.Synchronize(ctx, mode)
	if err != nil {
		return fmt.Errorf("catalog sync failed: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func serve() error {
	c, err := setup()
	if err != nil {
		return err
	}
	cfg, appLogger := c.cfg, c.logger
	appLogger.Info("Starting bill payment settlement service", "version", Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger, err := repository.NewSettlementRepository(cfg.Ledger.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open settlement ledger: %w", err)
	}
	defer ledger.Close()

	notifier, closeNotifier := newNotifier(ctx, cfg, appLogger)
	defer closeNotifier()

	if cfg.Catalog.SyncOnStartup {
		result, err := c.catalogSvc.Synchronize(ctx, model.ParseSyncMode(cfg.Catalog.SyncMode))
		if err != nil {
			appLogger.WithError(err).Warn("Startup catalog sync failed, serving the seed catalog")
		} else {
			appLogger.Info("Startup catalog sync finished", "matched", result.MatchedCount)
		}
	}

	go service.RunLedgerRetention(ctx, ledger, cfg.Ledger.Retention, retentionInterval, appLogger)

	verifier := service.NewFlutterwaveService(&cfg.Flutterwave, appLogger)
	settlement := service.NewSettlementService(
		verifier, c.catalog, c.pricing, c.vendor, ledger, notifier, cfg.Reloadly.DialingCode, appLogger,
	)

	settlementHandler := handler.NewSettlementHandler(settlement, appLogger)
	catalogHandler := handler.NewCatalogHandler(c.catalogSvc, model.ParseSyncMode(cfg.Catalog.SyncMode), appLogger)
	healthHandler := handler.NewHealthHandler(notifier, ledger, c.catalog, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Security.APIKey, appLogger)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /health", healthHandler.CheckHealth)

	// Protected routes
	mux.HandleFunc("GET /api/v1/catalog", authMiddleware.Authenticate(catalogHandler.GetCatalog))
	mux.HandleFunc("POST /api/v1/catalog/sync", authMiddleware.Authenticate(catalogHandler.Synchronize))
	mux.HandleFunc("POST /api/v1/catalog/operator-ids", authMiddleware.Authenticate(catalogHandler.UpdateOperatorIDs))
	mux.HandleFunc("POST /api/v1/settlements", authMiddleware.Authenticate(settlementHandler.Settle))
	mux.HandleFunc("GET /api/v1/settlements/{reference}/status", authMiddleware.Authenticate(settlementHandler.Status))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      middleware.RequestID(appLogger)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info("Server stopped gracefully")
	return nil
}

// alertChannel is what the settlement service and health check need from a notifier
type alertChannel interface {
	service.Notifier
	handler.NotifierStatus
}

// newNotifier prefers WhatsApp when an alert destination is configured and
// falls back to logging alerts when the session cannot be established.
func newNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger) (alertChannel, func()) {
	if !cfg.WhatsApp.Enabled() {
		return service.NewLogNotifier(log), func() {}
	}

	wa, err := service.NewWhatsAppNotifier(ctx, &cfg.WhatsApp, log)
	if err != nil {
		log.WithError(err).Warn("WhatsApp alerts unavailable, logging alerts instead")
		return service.NewLogNotifier(log), func() {}
	}

	if err := wa.Connect(ctx); err != nil {
		log.WithError(err).Warn("Failed to connect to WhatsApp, logging alerts instead")
		return service.NewLogNotifier(log), func() {}
	}

	return wa, wa.Disconnect
}

// ensureEnvFile creates .env from .env.example if .env doesn't exist
func ensureEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return nil
	}

	if _, err := os.Stat(".env.example"); os.IsNotExist(err) {
		return fmt.Errorf(".env.example not found")
	}

	source, err := os.Open(".env.example")
	if err != nil {
		return fmt.Errorf("failed to open .env.example: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(".env")
	if err != nil {
		return fmt.Errorf("failed to create .env: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return fmt.Errorf("failed to copy .env.example to .env: %w", err)
	}

	log.Println("Created .env file from .env.example")
	return nil
}
