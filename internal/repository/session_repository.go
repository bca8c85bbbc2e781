package repository

import (
	"gorm.io/gorm"

	"rli-storage-service/internal/metrics"
	"rli-storage-service/internal/models"
)

// SessionRepository provides methods to interact with the Session model in the database.
type SessionRepository struct {
	*Store[models.Session, *models.Session]
}

func NewSessionRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *SessionRepository {
	return &SessionRepository{Store: NewStore[models.Session](db, m)}
}

// GetAll retrieves all Sessions from the database.
func (r *SessionRepository) GetAll() ([]models.Session, error) {
	return r.find("get_all", nil)
}

// FileRepository provides methods to interact with the File model in the database.
type FileRepository struct {
	*Store[models.File, *models.File]
}

func NewFileRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *FileRepository {
	return &FileRepository{Store: NewStore[models.File](db, m)}
}

// GetBySessionID retrieves the Files registered under a session.
func (r *FileRepository) GetBySessionID(sessionID uint) ([]models.File, error) {
	return r.find("get_by_session", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("session_id = ?", sessionID)
	})
}

// MarkRepository provides methods to interact with the Mark model in the database.
type MarkRepository struct {
	*Store[models.Mark, *models.Mark]
}

func NewMarkRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *MarkRepository {
	return &MarkRepository{Store: NewStore[models.Mark](db, m)}
}

// GetAll retrieves all Marks from the database.
func (r *MarkRepository) GetAll() ([]models.Mark, error) {
	return r.find("get_all", nil)
}

// GetBySessionID retrieves the Marks placed during a session.
func (r *MarkRepository) GetBySessionID(sessionID uint) ([]models.Mark, error) {
	return r.find("get_by_session", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("session_id = ?", sessionID)
	})
}

// RegionRepository provides methods to interact with the Region model in the database.
type RegionRepository struct {
	*Store[models.Region, *models.Region]
}

func NewRegionRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *RegionRepository {
	return &RegionRepository{Store: NewStore[models.Region](db, m)}
}

// GetAll retrieves all Regions from the database.
func (r *RegionRepository) GetAll() ([]models.Region, error) {
	return r.find("get_all", nil)
}

// ObjectRepository provides methods to interact with the Object model in the database.
type ObjectRepository struct {
	*Store[models.Object, *models.Object]
}

func NewObjectRepository(db *gorm.DB, m *metrics.RepositoryMetrics) *ObjectRepository {
	return &ObjectRepository{Store: NewStore[models.Object](db, m)}
}

// GetByMarkID retrieves the Objects detected at a mark.
func (r *ObjectRepository) GetByMarkID(markID uint) ([]models.Object, error) {
	return r.find("get_by_mark", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("mark_id = ?", markID)
	})
}
