// AutoVerse Catalog API
// @title AutoVerse Catalog API
// @version 1.0
// @description Vehicle catalog built from Indian car and bike listing sites, with scrape triggers and a read API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "autoverse/docs"
	"autoverse/internal/catalog"
	"autoverse/internal/handlers"
	"autoverse/internal/llm"
	"autoverse/internal/middleware"
	"autoverse/internal/orchestrator"
	"autoverse/internal/scraper"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/catalog.db"
	}

	store, err := catalog.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer store.Close()

	// Enrichment is optional; without an API key every record takes the
	// deterministic fallback path.
	var enricher llm.Enricher
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		baseURL := os.Getenv("OPENAI_BASE_URL")
		if baseURL == "" {
			baseURL = "https://api.openai.com"
		}
		enricher = llm.NewOpenAIEnricher(baseURL, apiKey)
		log.Printf("Enrichment enabled via %s", baseURL)
	} else {
		log.Println("OPENAI_API_KEY not set, using deterministic normalization")
	}
	normalizer := llm.NewService(enricher)

	var sources []orchestrator.Source
	for _, s := range scraper.All() {
		sources = append(sources, s)
	}
	orch := orchestrator.New(sources, normalizer, store)

	adminKey := os.Getenv("ADMIN_KEY")
	if adminKey == "" {
		log.Fatal("ADMIN_KEY must be set")
	}

	// Initialize Gin router
	r := gin.Default()

	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Admin-Key"}
	r.Use(cors.New(config))

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Limit(2), 10)))

	scraperHandler := handlers.NewScraperHandler(orch, store)
	vehicleHandler := handlers.NewVehicleHandler(store)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/vehicles", vehicleHandler.List)
		api.GET("/vehicles/:slug", vehicleHandler.GetBySlug)
		api.GET("/brands", vehicleHandler.Brands)
		api.GET("/scraper/stats", scraperHandler.Stats)
		api.GET("/scraper/sessions", scraperHandler.Sessions)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		admin := api.Group("/scraper")
		admin.Use(middleware.AdminKeyMiddleware(adminKey))
		{
			triggers := admin.Group("")
			triggers.Use(middleware.TriggerProtectionMiddleware(30 * time.Minute))
			triggers.GET("/scrape-all", scraperHandler.ScrapeAll)
			triggers.GET("/scrape/:source", scraperHandler.ScrapeSource)

			admin.POST("/refresh-specs", scraperHandler.RefreshSpecs)
		}
	}

	startPeriodicScrape(orch)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// startPeriodicScrape refreshes the catalog on a fixed interval, roughly
// twice a week by default.
func startPeriodicScrape(orch *orchestrator.Orchestrator) {
	hours := 84
	if raw := os.Getenv("SCRAPE_INTERVAL_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			log.Printf("Ignoring invalid SCRAPE_INTERVAL_HOURS=%q", raw)
		} else {
			hours = parsed
		}
	}

	interval := time.Duration(hours) * time.Hour
	log.Printf("Periodic scrape scheduled every %dh (next: %s)",
		hours, time.Now().Add(interval).Format("Mon, 02 Jan 2006 15:04"))

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			summary, err := orch.ScrapeAll(context.Background())
			if err != nil {
				log.Printf("Periodic scrape failed: %v", err)
				continue
			}
			log.Printf("Periodic scrape saved %d vehicles", summary.VehiclesScraped)
		}
	}()
}
