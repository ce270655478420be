package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"autoverse/internal/catalog"
	"autoverse/internal/models"
	"autoverse/internal/orchestrator"
	"autoverse/internal/util"
	"autoverse/internal/validation"
)

// ScraperHandler exposes the scrape triggers and run observability.
type ScraperHandler struct {
	orchestrator *orchestrator.Orchestrator
	store        *catalog.Store
}

func NewScraperHandler(o *orchestrator.Orchestrator, store *catalog.Store) *ScraperHandler {
	return &ScraperHandler{orchestrator: o, store: store}
}

// ScrapeAll godoc
// @Summary Trigger a full scrape across all sources
// @Description Launches the scrape in the background and returns immediately. Progress lands in the scrape log; check /api/scraper/sessions. Requires the admin key.
// @Tags scraper
// @Produce json
// @Security AdminKey
// @Success 202 {object} map[string]interface{} "message: Scraping started"
// @Failure 429 {object} map[string]string "error: scrape already in progress"
// @Router /api/scraper/scrape-all [get]
func (h *ScraperHandler) ScrapeAll(c *gin.Context) {
	if h.orchestrator.Running() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "scrape already in progress"})
		return
	}

	go func() {
		summary, err := h.orchestrator.ScrapeAll(context.Background())
		if err != nil {
			log.Printf("background scrape failed: %v", err)
			return
		}
		log.Printf("background scrape saved %d vehicles", summary.VehiclesScraped)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Scraping started. This may take 10-15 minutes.",
	})
}

// ScrapeSource godoc
// @Summary Trigger a scrape of a single source
// @Description Launches the scrape of one source (carwale, cardekho, bikewale, bikedekho) in the background. Requires the admin key.
// @Tags scraper
// @Produce json
// @Security AdminKey
// @Param source path string true "Source name" Enums(carwale, cardekho, bikewale, bikedekho)
// @Success 202 {object} map[string]interface{} "message: Scraping started"
// @Failure 400 {object} map[string]string "error: invalid source name"
// @Failure 404 {object} map[string]string "error: unknown source"
// @Router /api/scraper/scrape/{source} [get]
func (h *ScraperHandler) ScrapeSource(c *gin.Context) {
	source := c.Param("source")
	if err := validation.ValidateSourceName(source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.knownSource(source) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown source: " + source})
		return
	}

	go func() {
		summary, err := h.orchestrator.ScrapeSource(context.Background(), source)
		if err != nil {
			log.Printf("background scrape of %s failed: %v", source, err)
			return
		}
		log.Printf("background scrape of %s saved %d vehicles", source, summary.VehiclesScraped)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Scraping " + source + " started.",
	})
}

// Stats godoc
// @Summary Get catalog counters
// @Tags scraper
// @Produce json
// @Success 200 {object} models.ScrapeStats
// @Router /api/scraper/stats [get]
func (h *ScraperHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.orchestrator.GetStats())
}

// Sessions godoc
// @Summary List recent scrape runs
// @Description Returns the newest entries of the scrape log, including per-source errors of partial runs.
// @Tags scraper
// @Produce json
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {array} models.ScrapeSession
// @Router /api/scraper/sessions [get]
func (h *ScraperHandler) Sessions(c *gin.Context) {
	limit, err := validation.ParseLimit(c.Query("limit"), 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, err := h.store.RecentSessions(limit)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load scrape log", err)
		return
	}
	if sessions == nil {
		sessions = []models.ScrapeSession{}
	}

	c.JSON(http.StatusOK, sessions)
}

// RefreshSpecs godoc
// @Summary Re-run enrichment over every stored vehicle
// @Description Rewrites specs, pros/cons and descriptions of the whole catalog. Requires the admin key and runs in the background.
// @Tags scraper
// @Produce json
// @Security AdminKey
// @Success 202 {object} map[string]interface{} "message: Refresh started"
// @Failure 429 {object} map[string]string "error: scrape already in progress"
// @Router /api/scraper/refresh-specs [post]
func (h *ScraperHandler) RefreshSpecs(c *gin.Context) {
	if h.orchestrator.Running() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "scrape already in progress"})
		return
	}

	go func() {
		refreshed, err := h.orchestrator.RefreshSpecs(context.Background())
		if err != nil && !errors.Is(err, orchestrator.ErrScrapeInProgress) {
			log.Printf("spec refresh failed: %v", err)
			return
		}
		log.Printf("spec refresh rewrote %d vehicles", refreshed)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Spec refresh started.",
	})
}

func (h *ScraperHandler) knownSource(name string) bool {
	for _, s := range h.orchestrator.Sources() {
		if s == name {
			return true
		}
	}
	return false
}
