package models

import (
	"time"

	"gorm.io/gorm"
)

type TypeSourceRLI struct {
	Base
	Name string `json:"name" gorm:"not null"`
}

func (TypeSourceRLI) TableName() string { return "type_source_rli" }

func (t *TypeSourceRLI) Validate() error {
	if t.Name == "" {
		return required("type_source_rli", "name")
	}
	return nil
}

// RawRLI is radar imagery as received. DateReceiving is stamped on every save.
type RawRLI struct {
	Base
	FileID          *uint     `json:"file_id" gorm:"index"`
	TypeSourceRLIID *uint     `json:"type_source_rli_id" gorm:"column:type_source_rli_id"`
	DateReceiving   time.Time `json:"date_receiving" gorm:"not null"`

	File          *File          `json:"-" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
	TypeSourceRLI *TypeSourceRLI `json:"-" gorm:"foreignKey:TypeSourceRLIID;constraint:OnDelete:CASCADE"`
}

func (RawRLI) TableName() string { return "raw_rli" }

func (r *RawRLI) Validate() error { return nil }

func (r *RawRLI) BeforeSave(tx *gorm.DB) error {
	r.DateReceiving = now()
	return nil
}

// RLI is a processed radar picture derived from a RawRLI.
type RLI struct {
	Base
	TimeLocation *time.Time `json:"time_location"`
	Name         string     `json:"name" gorm:"not null"`
	IsProcessing bool       `json:"is_processing" gorm:"not null;default:false"`
	RawRLIID     *uint      `json:"raw_rli_id" gorm:"column:raw_rli_id;index"`

	RawRLI *RawRLI `json:"-" gorm:"foreignKey:RawRLIID;constraint:OnDelete:CASCADE"`
}

func (RLI) TableName() string { return "rli" }

func (r *RLI) Validate() error {
	if r.Name == "" {
		return required("rli", "name")
	}
	return nil
}

// RasterRLI is an RLI rendered to a raster pinned to an Extent.
type RasterRLI struct {
	Base
	RLIID    *uint `json:"rli_id" gorm:"column:rli_id;index"`
	FileID   *uint `json:"file_id" gorm:"index"`
	ExtentID *uint `json:"extent_id"`

	RLI    *RLI    `json:"-" gorm:"foreignKey:RLIID;constraint:OnDelete:CASCADE"`
	File   *File   `json:"-" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
	Extent *Extent `json:"-" gorm:"foreignKey:ExtentID;constraint:OnDelete:CASCADE"`
}

func (RasterRLI) TableName() string { return "raster_rli" }

func (r *RasterRLI) Validate() error { return nil }

type TypeBindingMethod struct {
	Base
	Name string `json:"name" gorm:"not null"`
}

func (TypeBindingMethod) TableName() string { return "type_binding_method" }

func (t *TypeBindingMethod) Validate() error {
	if t.Name == "" {
		return required("type_binding_method", "name")
	}
	return nil
}

// LinkedRLI records one georeferencing attempt of a RasterRLI.
type LinkedRLI struct {
	Base
	RasterRLIID          *uint `json:"raster_rli_id" gorm:"column:raster_rli_id"`
	FileID               *uint `json:"file_id" gorm:"index"`
	ExtentID             *uint `json:"extent_id"`
	BindingAttemptNumber *int  `json:"binding_attempt_number"`
	TypeBindingMethodID  *uint `json:"type_binding_method_id"`

	RasterRLI         *RasterRLI         `json:"-" gorm:"foreignKey:RasterRLIID;constraint:OnDelete:CASCADE"`
	File              *File              `json:"-" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
	Extent            *Extent            `json:"-" gorm:"foreignKey:ExtentID;constraint:OnDelete:CASCADE"`
	TypeBindingMethod *TypeBindingMethod `json:"-" gorm:"foreignKey:TypeBindingMethodID;constraint:OnDelete:CASCADE"`
}

func (LinkedRLI) TableName() string { return "linked_rli" }

func (l *LinkedRLI) Validate() error { return nil }
