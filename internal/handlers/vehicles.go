package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autoverse/internal/catalog"
	"autoverse/internal/models"
	"autoverse/internal/util"
	"autoverse/internal/validation"
)

// VehicleHandler is the catalog read surface.
type VehicleHandler struct {
	store *catalog.Store
}

func NewVehicleHandler(store *catalog.Store) *VehicleHandler {
	return &VehicleHandler{store: store}
}

// List godoc
// @Summary List vehicles
// @Description Lists catalog vehicles, optionally filtered by type and brand and sorted by price.
// @Tags vehicles
// @Produce json
// @Param type query string false "Vehicle type" Enums(car, bike)
// @Param brand query string false "Brand name (case-insensitive)"
// @Param limit query int false "Max results (default 50)"
// @Param sort query string false "Sort order" Enums(price_asc, price_desc, newest)
// @Success 200 {array} models.Vehicle
// @Failure 400 {object} map[string]string "error: invalid query parameter"
// @Router /api/vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	vehicleType := c.Query("type")
	if err := validation.ValidateVehicleType(vehicleType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sort := c.Query("sort")
	if err := validation.ValidateSort(sort); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := validation.ParseLimit(c.Query("limit"), 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicles, err := h.store.Find(catalog.Filter{
		Type:  vehicleType,
		Brand: c.Query("brand"),
		Limit: limit,
		Sort:  sort,
	})
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load vehicles", err)
		return
	}
	if vehicles == nil {
		vehicles = []*models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetBySlug godoc
// @Summary Get one vehicle by slug
// @Tags vehicles
// @Produce json
// @Param slug path string true "Vehicle slug, e.g. tata-nexon"
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} map[string]string "error: invalid slug"
// @Failure 404 {object} map[string]string "error: vehicle not found"
// @Router /api/vehicles/{slug} [get]
func (h *VehicleHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if err := validation.ValidateSlug(slug); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.store.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load vehicle", err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// Brands godoc
// @Summary List catalog brands
// @Description Lists the distinct brands in the catalog with the vehicle types each appears under.
// @Tags vehicles
// @Produce json
// @Success 200 {array} models.BrandSummary
// @Router /api/brands [get]
func (h *VehicleHandler) Brands(c *gin.Context) {
	brands, err := h.store.Brands()
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load brands", err)
		return
	}
	if brands == nil {
		brands = []models.BrandSummary{}
	}

	c.JSON(http.StatusOK, brands)
}
