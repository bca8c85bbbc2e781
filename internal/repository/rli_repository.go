package repository

import (
	"gorm.io/gorm"

	"rli-storage-service/internal/metrics"
	"rli-storage-service/internal/models"
)

// The session queries below walk the reference graph through nested id
// subqueries: each hop selects parent ids and the next one filters children
// by membership. The whole chain is sent as one statement, so the
// intermediate tables are read from a single snapshot while only the
// queried entity's lock is held.

// sessionFileIDs selects the ids of files registered under sessionID.
func (s *Store[T, PT]) sessionFileIDs(sessionID uint) *gorm.DB {
	return s.ids(&models.File{}, "session_id = ?", sessionID)
}

// RawRLIRepository provides methods to interact with the RawRLI model in the database.
type RawRLIRepository struct {
	*Store[models.RawRLI, *models.RawRLI]
}

func NewRawRLIRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *RawRLIRepository {
	return &RawRLIRepository{Store: NewStore[models.RawRLI](db, m)}
}

// GetByFileID retrieves the RawRLIs read from a file.
func (r *RawRLIRepository) GetByFileID(fileID uint) ([]models.RawRLI, error) {
	return r.find("get_by_file", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("file_id = ?", fileID)
	})
}

// RLIRepository provides methods to interact with the RLI model in the database.
type RLIRepository struct {
	*Store[models.RLI, *models.RLI]
}

func NewRLIRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *RLIRepository {
	return &RLIRepository{Store: NewStore[models.RLI](db, m)}
}

// GetBySessionID retrieves RLIs reachable as file -> raw_rli -> rli from a session.
func (r *RLIRepository) GetBySessionID(sessionID uint) ([]models.RLI, error) {
	return r.find("get_by_session", func(tx *gorm.DB) *gorm.DB {
		rawIDs := r.ids(&models.RawRLI{}, "file_id IN (?)", r.sessionFileIDs(sessionID))
		return tx.Where("raw_rli_id IN (?)", rawIDs)
	})
}

// RasterRLIRepository provides methods to interact with the RasterRLI model in the database.
type RasterRLIRepository struct {
	*Store[models.RasterRLI, *models.RasterRLI]
}

func NewRasterRLIRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *RasterRLIRepository {
	return &RasterRLIRepository{Store: NewStore[models.RasterRLI](db, m)}
}

// GetByRLIID retrieves the rasters rendered from an RLI.
func (r *RasterRLIRepository) GetByRLIID(rliID uint) ([]models.RasterRLI, error) {
	return r.find("get_by_rli", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("rli_id = ?", rliID)
	})
}

// LinkedRLIRepository provides methods to interact with the LinkedRLI model in the database.
type LinkedRLIRepository struct {
	*Store[models.LinkedRLI, *models.LinkedRLI]
}

func NewLinkedRLIRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *LinkedRLIRepository {
	return &LinkedRLIRepository{Store: NewStore[models.LinkedRLI](db, m)}
}

// GetBySessionID retrieves LinkedRLIs whose file belongs to a session.
func (r *LinkedRLIRepository) GetBySessionID(sessionID uint) ([]models.LinkedRLI, error) {
	return r.find("get_by_session", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("file_id IN (?)", r.sessionFileIDs(sessionID))
	})
}

// TargetRepository provides methods to interact with the Target model in the database.
type TargetRepository struct {
	*Store[models.Target, *models.Target]
}

func NewTargetRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *TargetRepository {
	return &TargetRepository{Store: NewStore[models.Target](db, m)}
}

// GetBySessionID retrieves Targets reachable as file -> raster_rli -> target from a session.
func (r *TargetRepository) GetBySessionID(sessionID uint) ([]models.Target, error) {
	return r.find("get_by_session", func(tx *gorm.DB) *gorm.DB {
		rasterIDs := r.ids(&models.RasterRLI{}, "file_id IN (?)", r.sessionFileIDs(sessionID))
		return tx.Where("raster_rli_id IN (?)", rasterIDs)
	})
}
