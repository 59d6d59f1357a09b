/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the dimension lookup server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment (.env overrides for dev)
  2. Configure structured logging
  3. Build the authenticated backend client
  4. Select the cache backend (memory, sqlite, or redis)
  5. Wire the lookup service, handlers, and router
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the cache backend
  4. Exit

ENVIRONMENT:
  PORT, LOG_LEVEL, CACHE_BACKEND, CACHE_TTL, CACHE_PATH, REDIS_ADDR,
  NETSUITE_ACCOUNT_ID, NETSUITE_CONSUMER_KEY, NETSUITE_CONSUMER_SECRET,
  NETSUITE_TOKEN_ID, NETSUITE_TOKEN_SECRET, NETSUITE_TIMEOUT

SEE ALSO:
  - config/config.go: Configuration schema
  - api/server.go: Router configuration
  - cache/: Backend implementations
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/finsheet/dimension-engine/api"
	"github.com/finsheet/dimension-engine/cache"
	"github.com/finsheet/dimension-engine/cache/rediscache"
	"github.com/finsheet/dimension-engine/cache/sqlitecache"
	"github.com/finsheet/dimension-engine/config"
	"github.com/finsheet/dimension-engine/netsuite"
	"github.com/finsheet/dimension-engine/suiteql"
)

func main() {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		logrus.WithError(err).Fatal("configuration error")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	// Backend client
	client := suiteql.NewHTTPClient(suiteql.Credentials{
		AccountID:      cfg.NetSuite.AccountID,
		ConsumerKey:    cfg.NetSuite.ConsumerKey,
		ConsumerSecret: cfg.NetSuite.ConsumerSecret,
		TokenID:        cfg.NetSuite.TokenID,
		TokenSecret:    cfg.NetSuite.TokenSecret,
	}, suiteql.WithTimeout(cfg.NetSuite.Timeout))

	// Cache backend
	store, closeStore, err := newCacheStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize cache backend")
	}
	defer closeStore()
	log.WithFields(logrus.Fields{
		"backend": cfg.CacheBackend,
		"ttl":     cfg.CacheTTL.String(),
	}).Info("cache configured")

	// Service and HTTP surface
	lookups := netsuite.NewLookupService(client, cache.New(store, cfg.CacheTTL), log)
	router := api.NewRouter(api.NewHandler(lookups, client, log))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // backend pagination can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

// newCacheStore builds the configured cache backend and a close function.
func newCacheStore(cfg *config.Configuration) (cache.Store, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheSQLite:
		store, err := sqlitecache.New(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.CacheRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return rediscache.New(rdb), func() { rdb.Close() }, nil
	default:
		return cache.NewMemory(), func() {}, nil
	}
}
