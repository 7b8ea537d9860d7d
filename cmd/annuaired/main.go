// Command annuaired serves the resolved business directory as a JSON API.
// It resolves the canonical set once at startup (remote API, then bundled
// CSV snapshot, then the static fallback) and answers identity, location and
// nearby queries against it. Rendering is somebody else's job; this binary
// only speaks JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beninbiz/annuaire"
)

func main() {
	configPath := flag.String("config", "annuaired.yml", "path to YAML config file")
	flag.Parse()

	cfg, err := annuaire.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("annuaired: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout+5*time.Second)
	defer cancel()

	dir, err := annuaire.New(ctx,
		annuaire.WithAPIBaseURL(cfg.APIBaseURL),
		annuaire.WithCSVPath(cfg.CSVPath),
		annuaire.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
	)
	if err != nil {
		// All three readers exhausted: fatal misconfiguration, not
		// something a retry loop should paper over.
		log.Fatalf("annuaired: %v", err)
	}

	health := annuaire.NewHealthCache(dir, cfg.HealthTTL, nil)

	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, health.Get())
	})

	api := router.Group("/api")
	{
		api.GET("/businesses", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"source":     dir.Source(),
				"businesses": dir.Businesses(),
			})
		})

		api.GET("/businesses/:id", func(c *gin.Context) {
			b, err := dir.FindByID(c.Param("id"))
			if errors.Is(err, annuaire.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
				return
			}
			c.JSON(http.StatusOK, b)
		})

		api.GET("/search", func(c *gin.Context) {
			results := dir.FindByLocation(c.Query("location"), c.Query("category"))
			if results == nil {
				results = []annuaire.Business{}
			}
			c.JSON(http.StatusOK, gin.H{"count": len(results), "businesses": results})
		})

		api.GET("/nearby", func(c *gin.Context) {
			lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
			lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
			if errLat != nil || errLng != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be numbers"})
				return
			}
			limit := 20
			if raw := c.Query("limit"); raw != "" {
				if n, err := strconv.Atoi(raw); err == nil && n > 0 {
					limit = n
				}
			}
			c.JSON(http.StatusOK, gin.H{"businesses": dir.Nearby(lat, lng, limit)})
		})

		api.POST("/refresh", func(c *gin.Context) {
			rctx, rcancel := context.WithTimeout(c.Request.Context(), cfg.APITimeout+5*time.Second)
			defer rcancel()
			if err := dir.Refresh(rctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
			health.Invalidate()
			c.JSON(http.StatusOK, gin.H{"source": dir.Source(), "count": dir.Len()})
		})
	}

	log.Printf("annuaired: listening on %s (%d businesses from %s source)", cfg.ListenAddr, dir.Len(), dir.Source())
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("annuaired: %v", err)
	}
}

// requestID propagates or assigns an X-Request-ID header per request.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
