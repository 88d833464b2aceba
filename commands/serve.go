package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/auth"
	"github.com/dcode-github/realty_portal/cache"
	"github.com/dcode-github/realty_portal/config"
	"github.com/dcode-github/realty_portal/controllers"
	"github.com/dcode-github/realty_portal/feeds"
	"github.com/dcode-github/realty_portal/mail"
	"github.com/dcode-github/realty_portal/metrics"
	"github.com/dcode-github/realty_portal/middleware"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/routes"
	"github.com/dcode-github/realty_portal/store"
	"github.com/dcode-github/realty_portal/utils"
	"github.com/dcode-github/realty_portal/workflows"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()
			return serve(rt)
		},
	}
}

func serve(rt *env) error {
	cfg, log := rt.cfg, rt.log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(cfg.Metrics.Prefix)

	var listingCache cache.ListingCache = cache.Noop{}
	var blocklist auth.Blocklist = auth.NewMemoryBlocklist()
	if cfg.Redis.Enabled {
		redisClient, err := config.InitRedis(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, continuing without listing cache", zap.Error(err))
		} else {
			defer closeRedis(redisClient, log)
			log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
			listingCache = cache.NewRedisCache(redisClient, cfg.Redis.CacheTTL, log)
			blocklist = auth.NewRedisBlocklist(redisClient)
		}
	}

	collector := workflows.NewCollector(workflows.NewLogReporter(log, m))
	svc := workflows.New(workflows.Deps{
		Store:           rt.store,
		Mailer:          mail.NewSendGrid(cfg.Mail.SendGridAPIKey, cfg.Mail.From, cfg.Mail.FromName, log),
		Reporter:        collector,
		Cache:           listingCache,
		Metrics:         m,
		Logger:          log,
		SchedulingLink:  cfg.Mail.SchedulingLink,
		AdminInbox:      cfg.Mail.AdminInbox,
		RelayRecipients: cfg.Mail.RelayRecipients,
	})
	defer svc.Wait()

	tokens := utils.TokenIssuer{
		Key:        []byte(cfg.JWT.SigningKey),
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	}
	authService := auth.NewService(rt.store, tokens, blocklist, log)

	properties, err := feeds.Start[models.Property](ctx, rt.store, store.Query{Collection: models.CollectionProperties}, log)
	if err != nil {
		return err
	}
	community, err := feeds.Start[models.CommunityListing](ctx, rt.store, store.Query{Collection: models.CollectionCommunity}, log)
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	routes.Routes(router, routes.App{
		Workflows:  svc,
		Auth:       authService,
		Properties: properties,
		Community:  community,
		Listings:   controllers.Listings{Cache: listingCache, Metrics: m},
		Collector:  collector,
		Metrics:    m,
	})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	handler := middleware.RequestLogger(log)(corsOptions.Handler(router))

	server := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("Error starting server", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", zap.Error(err))
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}

func closeRedis(client *redis.Client, log *zap.Logger) {
	if err := client.Close(); err != nil {
		log.Error("Error closing Redis connection", zap.Error(err))
	}
}
