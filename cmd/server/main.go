package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/darkden-lab/homepage/docs"
	"github.com/darkden-lab/homepage/internal/config"
	"github.com/darkden-lab/homepage/internal/db"
	"github.com/darkden-lab/homepage/internal/extension"
	"github.com/darkden-lab/homepage/internal/homepage"
	"github.com/darkden-lab/homepage/internal/logging"
	"github.com/darkden-lab/homepage/internal/metrics"
	mw "github.com/darkden-lab/homepage/internal/middleware"
	"github.com/darkden-lab/homepage/internal/storage"
	pluginCV "github.com/darkden-lab/homepage/plugins/cv"
	pluginGitHub "github.com/darkden-lab/homepage/plugins/github"
	pluginIndieWeb "github.com/darkden-lab/homepage/plugins/indieweb"
)

func main() {
	cfg := config.Load()
	logging.InitLogger(os.Stderr, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("configuration rejected")
	}

	ctx := context.Background()

	// Storage
	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("storage unavailable")
	}
	defer closeBackend()

	// Extensions: phase 1 registers everything, phase 2 runs discovery.
	host := extension.NewHost(backend)
	endpoint := homepage.NewEndpoint(homepage.Options{
		MountPath:   cfg.MountPath,
		ContentDir:  cfg.ContentDir,
		MirrorTries: cfg.MirrorRetries,
	})
	if err := host.Register(endpoint); err != nil {
		logging.Fatal().Err(err).Msg("failed to register homepage endpoint")
	}
	registerPlugins(host)
	registerManifests(host, cfg.ExtensionsDir)

	if err := host.Ready(ctx); err != nil {
		logging.Fatal().Err(err).Msg("extension startup failed")
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        newRouter(cfg, host, endpoint),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logging.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logging.Info().Str("port", cfg.Port).Str("mount", cfg.MountPath).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Fatal().Err(err).Msg("server failed to start")
	}

	logging.Info().Msg("server stopped")
}

func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logging.Warn().Msg("using in-memory storage; configuration is lost on restart")
		return storage.NewMemory(), func() {}, nil

	case config.StoreDriverMongo:
		m, err := storage.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return m, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.Close(closeCtx) //nolint:errcheck
		}, nil

	default:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			database.Close()
			return nil, nil, err
		}
		return storage.NewPostgres(database.Pool), database.Close, nil
	}
}

func registerPlugins(host *extension.Host) {
	for _, ext := range []extension.Extension{
		pluginCV.New(),
		pluginGitHub.New(),
		pluginIndieWeb.New(),
	} {
		if err := host.Register(ext); err != nil {
			logging.Warn().Err(err).Str("extension", ext.Name()).Msg("failed to register plugin")
		}
	}
}

func registerManifests(host *extension.Host, dir string) {
	manifests, err := extension.LoadManifests(dir)
	if err != nil {
		logging.Warn().Err(err).Str("dir", dir).Msg("failed to load extension manifests")
		return
	}
	for _, m := range manifests {
		if err := host.Register(m); err != nil {
			logging.Warn().Err(err).Str("file", m.Path()).Msg("failed to register manifest extension")
		}
	}
}

func newRouter(cfg *config.Config, host *extension.Host, endpoint *homepage.Endpoint) http.Handler {
	r := mux.NewRouter()
	r.Use(mw.RequestID, mw.AccessLog)

	// Ambient routes
	r.HandleFunc("/healthz", healthzHandler).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	docs.RegisterRoutes(r)

	// Public read path for the site build
	public := r.PathPrefix("").Subrouter()
	public.Use(mw.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	homepageHandlers := endpoint.Handlers()
	homepageHandlers.RegisterPublicRoutes(public)

	// Editor routes; authentication is provided in front of this server.
	protected := r.PathPrefix("").Subrouter()
	homepageHandlers.RegisterRoutes(protected)
	extension.NewHandlers(host).RegisterRoutes(protected)
	for _, ext := range host.Endpoints() {
		if rp, ok := ext.(extension.RouteProvider); ok {
			rp.RegisterRoutes(protected)
		}
	}

	return mw.CORS(cfg.AllowedOrigins)(r)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}
