package httpserver

import (
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"product-catalog/internal/config"
	"product-catalog/internal/dispatch"
	"product-catalog/web"
)

// Deps carries the wiring the router needs.
type Deps struct {
	Dispatcher *dispatch.Dispatcher
	Config     config.Config
}

// buildRouter wires routes for the API and the embedded frontend.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.Config)))

	router.GET("/health", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/config", frontendConfigHandler(deps.Config))

	h := &productHandlers{dispatcher: deps.Dispatcher, logger: logger}
	products := api.Group("/products")
	products.GET("", h.list)
	products.GET("/active", h.listActive)
	products.GET("/search", h.search)
	products.GET("/category/:category", h.listByCategory)
	products.GET("/:id", h.get)
	products.POST("", h.create)
	products.PUT("/:id", h.update)
	products.DELETE("/:id", h.remove)

	if err := registerUI(router); err != nil {
		return nil, err
	}

	return router, nil
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	c.MaxAge = 12 * time.Hour
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

// frontendConfigHandler exposes the environment values the frontend needs
// at runtime: API base URL, request timeout, display currency, page size.
func frontendConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"apiBaseUrl":       cfg.APIBaseURL,
			"requestTimeoutMs": cfg.RequestTimeout.Milliseconds(),
			"currency":         cfg.DisplayCurrency,
			"itemsPerPage":     cfg.ItemsPerPage,
		})
	}
}

// registerUI serves the embedded single-page frontend.
func registerUI(router *gin.Engine) error {
	sub, err := fs.Sub(web.Assets, "static")
	if err != nil {
		return err
	}
	uiFS := http.FS(sub)

	router.GET("/", func(c *gin.Context) { c.FileFromFS("/", uiFS) })
	router.GET("/app.js", func(c *gin.Context) { c.FileFromFS("app.js", uiFS) })
	router.GET("/styles.css", func(c *gin.Context) { c.FileFromFS("styles.css", uiFS) })
	return nil
}
