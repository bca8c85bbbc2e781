package repository

import (
	"strings"

	"gorm.io/gorm"

	"rli-storage-service/internal/geo"
	"rli-storage-service/internal/metrics"
	"rli-storage-service/internal/models"
)

// CoordinatesRepository provides methods to interact with the Coordinates model in the database.
type CoordinatesRepository struct {
	*Store[models.Coordinates, *models.Coordinates]
}

func NewCoordinatesRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *CoordinatesRepository {
	return &CoordinatesRepository{Store: NewStore[models.Coordinates](db, m)}
}

// FindWithinRadius returns the points within radiusMeters of (lat, lng),
// ordered by id. A bounding box query narrows the rows, the exact haversine
// distance decides.
func (r *CoordinatesRepository) FindWithinRadius(lat, lng, radiusMeters float64) ([]models.Coordinates, error) {
	box := geo.BoundingBox(lat, lng, radiusMeters)
	lngClauses := make([]string, 0, len(box.Lng))
	lngArgs := make([]interface{}, 0, 2*len(box.Lng))
	for _, rng := range box.Lng {
		lngClauses = append(lngClauses, "longitude BETWEEN ? AND ?")
		lngArgs = append(lngArgs, rng.Min, rng.Max)
	}
	candidates, err := r.find("find_within_radius", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("latitude BETWEEN ? AND ?", box.Lat.Min, box.Lat.Max).
			Where("("+strings.Join(lngClauses, " OR ")+")", lngArgs...)
	})
	if err != nil {
		return nil, err
	}

	within := make([]models.Coordinates, 0, len(candidates))
	for _, c := range candidates {
		if c.Latitude == nil || c.Longitude == nil {
			continue
		}
		if geo.HaversineDistance(lat, lng, *c.Latitude, *c.Longitude) <= radiusMeters {
			within = append(within, c)
		}
	}
	return within, nil
}
