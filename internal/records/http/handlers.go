package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rms-demo/rms-backend/internal/geo"
	"github.com/rms-demo/rms-backend/internal/records/cache"
	"github.com/rms-demo/rms-backend/internal/records/domain"
)

// list handles GET /api/records. The bounding-box filter activates only
// when all four scalars are present; fewer than four means the plain
// unfiltered list, which is the only result the cache serves.
func (h *Handler) list(c *gin.Context) {
	minLon, err := floatQuery(c, "minLon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minLon"})
		return
	}
	minLat, err := floatQuery(c, "minLat")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minLat"})
		return
	}
	maxLon, err := floatQuery(c, "maxLon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxLon"})
		return
	}
	maxLat, err := floatQuery(c, "maxLat")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxLat"})
		return
	}

	ctx := c.Request.Context()
	bounds := geo.BoundsFromQuery(minLon, minLat, maxLon, maxLat)

	if bounds == nil {
		if records, err := h.cache.GetList(ctx); err == nil {
			c.JSON(http.StatusOK, toResponseList(records))
			return
		} else if err != cache.ErrMiss {
			log.Printf("[records] list cache read failed: %v", err)
		}
	}

	records, err := h.store.Query(ctx, bounds)
	if err != nil {
		log.Printf("[records] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	if bounds == nil {
		if err := h.cache.SetList(ctx, records); err != nil {
			log.Printf("[records] list cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, toResponseList(records))
}

// create handles POST /api/records. A location is built only when both
// coordinates are present; a single coordinate is dropped silently rather
// than rejected.
func (h *Handler) create(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := domain.ValidateTitle(req.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := domain.ValidateDescription(req.Description); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := domain.Record{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Latitude != nil && req.Longitude != nil {
		rec.Location = &geo.Point{Lon: *req.Longitude, Lat: *req.Latitude}
	}

	ctx := c.Request.Context()
	if err := h.store.Insert(ctx, &rec); err != nil {
		log.Printf("[records] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		log.Printf("[records] list cache invalidate failed: %v", err)
	}

	c.Header("Location", "/api/records/"+rec.ID.String())
	c.JSON(http.StatusCreated, toResponse(&rec))
}

// getByID handles GET /api/records/:id.
func (h *Handler) getByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	rec, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		log.Printf("[records] get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, toResponse(rec))
}

// geocode handles GET /api/records/geocode. The address is required; the
// provider payload passes through verbatim, including the fallback shape
// when no key is configured.
func (h *Handler) geocode(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	payload, err := h.geocoder.Geocode(c.Request.Context(), address)
	if err != nil {
		log.Printf("[records] geocode failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "geocode failed"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// floatQuery reads an optional float query parameter. Absent means nil;
// present but unparsable is a client error.
func floatQuery(c *gin.Context, name string) (*float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
