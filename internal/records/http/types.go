package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rms-demo/rms-backend/internal/geo"
	"github.com/rms-demo/rms-backend/internal/records/cache"
	"github.com/rms-demo/rms-backend/internal/records/domain"
)

// Store is the persistence contract the handlers depend on.
type Store interface {
	Insert(ctx context.Context, rec *domain.Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	Query(ctx context.Context, bounds *geo.Bounds) ([]domain.Record, error)
}

// Geocoder is the outbound geocoding contract.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (map[string]any, error)
}

// Handler bundles the dependencies for records HTTP endpoints.
type Handler struct {
	store    Store
	cache    *cache.ListCache
	geocoder Geocoder
}

func New(store Store, listCache *cache.ListCache, geocoder Geocoder) *Handler {
	return &Handler{store: store, cache: listCache, geocoder: geocoder}
}

type createRecordRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// recordResponse is the flat wire shape of a record: the composite location
// point splits into latitude/longitude, both null when absent.
type recordResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toResponse(rec *domain.Record) recordResponse {
	resp := recordResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Location != nil {
		resp.Latitude = &rec.Location.Lat
		resp.Longitude = &rec.Location.Lon
	}
	return resp
}

func toResponseList(records []domain.Record) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for i := range records {
		out = append(out, toResponse(&records[i]))
	}
	return out
}
