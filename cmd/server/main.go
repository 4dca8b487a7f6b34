package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/vidaplena/vidaplena/internal/api"
	"github.com/vidaplena/vidaplena/internal/db"
	"github.com/vidaplena/vidaplena/internal/middleware"
	"github.com/vidaplena/vidaplena/internal/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	addr := utils.SafeEnv("VIDA_ADDR", ":8080")
	commit := os.Getenv("VIDA_COMMIT")
	buildTime := os.Getenv("VIDA_BUILD_TIME")

	store, cleanup, err := openStore(logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer cleanup()

	mux := http.NewServeMux()
	api.NewRouter(store, logger).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "VidaPlena API",
			"locale":     locale,
			"msg":        utils.T(locale, "health.ok"),
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Frontend serving strategy (priority):
	// 1) Static files if VIDA_STATIC_DIR is set (fullstack image)
	// 2) Dev proxy if VIDA_DEV_FRONTEND_URL is set (proxy / to Vite dev)
	if staticDir := os.Getenv("VIDA_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	} else if devURL := os.Getenv("VIDA_DEV_FRONTEND_URL"); devURL != "" {
		if u, err := url.Parse(devURL); err == nil {
			rp := httputil.NewSingleHostReverseProxy(u)
			// Ensure no-store headers also apply to proxied responses
			rp.ModifyResponse = func(res *http.Response) error {
				res.Header.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
				res.Header.Set("Pragma", "no-cache")
				res.Header.Set("Expires", "0")
				return nil
			}
			mux.Handle("/", rp)
		} else {
			logger.Warn("invalid VIDA_DEV_FRONTEND_URL", zap.String("url", devURL), zap.Error(err))
		}
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(middleware.Locale(middleware.WithAuth(mux)))))

	logger.Info("vidaplena server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// openStore returns the SQLite store when VIDA_SQLITE_PATH is set and the
// in-memory store otherwise (dev runs, tests).
func openStore(logger *zap.Logger) (api.Store, func(), error) {
	path := os.Getenv("VIDA_SQLITE_PATH")
	if path == "" {
		logger.Info("VIDA_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore(), func() {}, nil
	}
	sqlDB, err := sql.Open("sqlite3", "file:"+path+"?cache=shared&_busy_timeout=5000")
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(sqlDB, os.Getenv("VIDA_MIGRATIONS_DIR")); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	store, err := db.NewSQLiteStore(sqlDB, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	logger.Info("sqlite store ready", zap.String("path", path))
	return store, func() { _ = sqlDB.Close() }, nil
}
