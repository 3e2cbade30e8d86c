// Command docstore-proxy exposes a caching, rate-limited HTTP proxy in
// front of a Docstore API, including a paginated collection export
// endpoint.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/querylane/docstore-client/pkg/client"
	"github.com/querylane/docstore-client/pkg/config"
	"github.com/querylane/docstore-client/pkg/docstore"
	"github.com/querylane/docstore-client/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	// Local overrides from .env, if present.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")

	apiClient, err := client.New(client.DefaultConfig(redisClient, cfg.BaseURL, cfg.UserAgent))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Docstore client")
	}
	defer apiClient.Close()

	service := docstore.NewService(apiClient)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler)
	mux.HandleFunc("/readyz", readyHandler(redisClient))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/export/", exportHandler(service, cfg.Database))

	log.Info().
		Str("listen", cfg.Listen).
		Str("base_url", cfg.BaseURL).
		Str("user_agent", cfg.UserAgent).
		Msg("Starting docstore proxy")

	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// loadConfig reads CONFIG_FILE when set, otherwise builds the config
// from defaults and environment variables.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.Load(path)
	}

	cfg := config.Default()
	cfg.Listen = getEnv("LISTEN", cfg.Listen)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.BaseURL = getEnv("DOCSTORE_BASE_URL", cfg.BaseURL)
	cfg.UserAgent = getEnv("USER_AGENT", cfg.UserAgent)
	cfg.Database = getEnv("DOCSTORE_DATABASE", cfg.Database)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	return cfg, cfg.Validate()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler reports readiness based on the Redis connection.
func readyHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := redisClient.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

// exportHandler walks every page of a collection listing and responds
// with the flattened document set.
// Example: GET /export/orders?pageSize=100
func exportHandler(service *docstore.Service, database string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := strings.Trim(strings.TrimPrefix(r.URL.Path, "/export/"), "/")
		if collection == "" || strings.Contains(collection, "/") {
			http.Error(w, "export path must name a single collection", http.StatusBadRequest)
			return
		}

		pageSize := 0
		if v := r.URL.Query().Get("pageSize"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			pageSize = n
		}

		if db := r.URL.Query().Get("database"); db != "" {
			database = db
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		pager, err := service.ListDocuments(ctx, &docstore.ListDocumentsRequest{
			Database:   database,
			Collection: collection,
			PageSize:   pageSize,
		})
		if err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("Export failed on first page")
			http.Error(w, "export failed: "+err.Error(), http.StatusBadGateway)
			return
		}

		documents, err := pager.All(ctx)
		if err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("Export failed mid-walk")
			http.Error(w, "export failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		if documents == nil {
			documents = []docstore.Document{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"database":   database,
			"collection": collection,
			"count":      len(documents),
			"documents":  documents,
		}); err != nil {
			log.Error().Err(err).Msg("Failed to write export response")
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
