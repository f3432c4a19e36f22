package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sarang-2004/DigitalEarth/internal/climate"
	"github.com/Sarang-2004/DigitalEarth/internal/ingest"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
	"github.com/Sarang-2004/DigitalEarth/internal/repository"
)

type ClimateService interface {
	Snapshot(ctx context.Context, city string) (models.ClimateSnapshot, error)
}

// FireIngestor runs one fire ingestion cycle synchronously. Backed by the
// ingest manager; the admin trigger endpoint uses it.
type FireIngestor interface {
	RunFireCycle(ctx context.Context) (ingest.CycleStats, error)
}

type Handler struct {
	fires     repository.FireRepository
	disasters repository.DisasterRepository
	climate   ClimateService
	ingestor  FireIngestor
}

func NewHandler(fires repository.FireRepository, disasters repository.DisasterRepository, climate ClimateService, ingestor FireIngestor) *Handler {
	return &Handler{
		fires:     fires,
		disasters: disasters,
		climate:   climate,
		ingestor:  ingestor,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/climate", h.getClimate)
	r.GET("/api/fires", h.getFires)
	r.GET("/api/disasters", h.getDisasters)
	r.POST("/api/ingest/fires", h.triggerFireIngest)
	r.GET("/health", h.health)
}

func (h *Handler) getClimate(c *gin.Context) {
	city := c.Query("city")

	snapshot, err := h.climate.Snapshot(c.Request.Context(), city)
	if err != nil {
		if errors.Is(err, climate.ErrCityRequired) || errors.Is(err, climate.ErrCityNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("climate snapshot failed", "city", city, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to fetch climate data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) getFires(c *gin.Context) {
	fires, err := h.fires.ListFires(c.Request.Context())
	if err != nil {
		slog.Error("error listing fires", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch fire data"})
		return
	}

	if fires == nil {
		fires = []models.FireEvent{}
	}
	c.JSON(http.StatusOK, fires)
}

func (h *Handler) getDisasters(c *gin.Context) {
	disasters, err := h.disasters.ListDisasters(c.Request.Context())
	if err != nil {
		slog.Error("error listing disasters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch disaster data"})
		return
	}

	if disasters == nil {
		disasters = []models.DisasterEvent{}
	}
	c.JSON(http.StatusOK, disasters)
}

func (h *Handler) triggerFireIngest(c *gin.Context) {
	stats, err := h.ingestor.RunFireCycle(c.Request.Context())
	if err != nil {
		slog.Error("manual fire ingestion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update fire data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "fire data updated successfully",
		"processed": stats.Processed,
		"errors":    stats.Errors,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
