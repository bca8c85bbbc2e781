package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mark is a point of interest placed during a session. Datetime is stamped on
// every save.
type Mark struct {
	Base
	CoordinatesID *uint     `json:"coordinates_id"`
	Datetime      time.Time `json:"datetime" gorm:"column:datetime;not null"`
	SessionID     *uint     `json:"session_id" gorm:"index"`

	Coordinates *Coordinates `json:"-" gorm:"foreignKey:CoordinatesID;constraint:OnDelete:CASCADE"`
	Session     *Session     `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (Mark) TableName() string { return "mark" }

func (m *Mark) Validate() error { return nil }

func (m *Mark) BeforeSave(tx *gorm.DB) error {
	m.Datetime = now()
	return nil
}

type RelatingObject struct {
	Base
	TypeRelating *int   `json:"type_relating" gorm:"not null"`
	Name         string `json:"name" gorm:"not null"`
}

func (RelatingObject) TableName() string { return "relating_object" }

func (r *RelatingObject) Validate() error {
	if r.TypeRelating == nil {
		return required("relating_object", "type_relating")
	}
	if r.Name == "" {
		return required("relating_object", "name")
	}
	return nil
}

// Object is something detected at a Mark. Meta is an opaque JSON payload.
type Object struct {
	Base
	MarkID           *uint          `json:"mark_id" gorm:"index"`
	Name             string         `json:"name"`
	Type             string         `json:"type" gorm:"column:type"`
	RelatingObjectID *uint          `json:"relating_object_id"`
	Meta             datatypes.JSON `json:"meta"`

	Mark           *Mark           `json:"-" gorm:"foreignKey:MarkID;constraint:OnDelete:CASCADE"`
	RelatingObject *RelatingObject `json:"-" gorm:"foreignKey:RelatingObjectID;constraint:OnDelete:CASCADE"`
}

func (Object) TableName() string { return "object" }

func (o *Object) Validate() error { return nil }

// Target is a numbered designation of an Object seen on a RasterRLI.
type Target struct {
	Base
	Number          *int       `json:"number" gorm:"not null"`
	ObjectID        *uint      `json:"object_id"`
	RasterRLIID     *uint      `json:"raster_rli_id" gorm:"column:raster_rli_id;index"`
	DatetimeSending *time.Time `json:"datetime_sending"`
	SpprTypeKey     string     `json:"sppr_type_key"`

	Object    *Object    `json:"-" gorm:"foreignKey:ObjectID;constraint:OnDelete:CASCADE"`
	RasterRLI *RasterRLI `json:"-" gorm:"foreignKey:RasterRLIID;constraint:OnDelete:CASCADE"`
}

func (Target) TableName() string { return "target" }

func (t *Target) Validate() error {
	if t.Number == nil {
		return required("target", "number")
	}
	return nil
}
