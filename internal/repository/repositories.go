package repository

import (
	"gorm.io/gorm"

	"rli-storage-service/internal/metrics"
	"rli-storage-service/internal/models"
)

// Lookup tables and leaf entities need nothing beyond the basic operations.
type (
	TypeSessionRepository       = Store[models.TypeSession, *models.TypeSession]
	TypeSourceRLIRepository     = Store[models.TypeSourceRLI, *models.TypeSourceRLI]
	TypeBindingMethodRepository = Store[models.TypeBindingMethod, *models.TypeBindingMethod]
	ExtentRepository            = Store[models.Extent, *models.Extent]
	RelatingObjectRepository    = Store[models.RelatingObject, *models.RelatingObject]
)

// Repositories bundles one repository per entity, all sharing one store handle.
type Repositories struct {
	TypeSessions       *TypeSessionRepository
	TypeSourceRLIs     *TypeSourceRLIRepository
	TypeBindingMethods *TypeBindingMethodRepository
	Coordinates        *CoordinatesRepository
	Extents            *ExtentRepository
	RelatingObjects    *RelatingObjectRepository
	Sessions           *SessionRepository
	Files              *FileRepository
	Marks              *MarkRepository
	RawRLIs            *RawRLIRepository
	RLIs               *RLIRepository
	RasterRLIs         *RasterRLIRepository
	LinkedRLIs         *LinkedRLIRepository
	Objects            *ObjectRepository
	Targets            *TargetRepository
	Regions            *RegionRepository
}

// New creates every repository on db. m may be nil.
func New(db *gorm.DB, m *metrics.RepositoryMetrics) *Repositories {
	return &Repositories{
		TypeSessions:       NewStore[models.TypeSession](db, m),
		TypeSourceRLIs:     NewStore[models.TypeSourceRLI](db, m),
		TypeBindingMethods: NewStore[models.TypeBindingMethod](db, m),
		Coordinates:        NewCoordinatesRepository(db, m),
		Extents:            NewStore[models.Extent](db, m),
		RelatingObjects:    NewStore[models.RelatingObject](db, m),
		Sessions:           NewSessionRepository(db, m),
		Files:              NewFileRepository(db, m),
		Marks:              NewMarkRepository(db, m),
		RawRLIs:            NewRawRLIRepository(db, m),
		RLIs:               NewRLIRepository(db, m),
		RasterRLIs:         NewRasterRLIRepository(db, m),
		LinkedRLIs:         NewLinkedRLIRepository(db, m),
		Objects:            NewObjectRepository(db, m),
		Targets:            NewTargetRepository(db, m),
		Regions:            NewRegionRepository(db, m),
	}
}

// Migrate creates any missing table, column, index or foreign key. It is safe
// to run on every start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
