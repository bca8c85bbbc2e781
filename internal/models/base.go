package models

import (
	"fmt"
	"time"
)

// Base carries the surrogate key shared by every table.
type Base struct {
	ID uint `json:"id" gorm:"primaryKey;autoIncrement"`
}

func (b Base) GetID() uint { return b.ID }

func (b *Base) SetID(id uint) { b.ID = id }

// ValidationError reports a required column that was left empty.
type ValidationError struct {
	Entity string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Entity, e.Field)
}

func required(entity, field string) error {
	return &ValidationError{Entity: entity, Field: field}
}

// now is used for the columns stamped on every save.
func now() time.Time {
	return time.Now().UTC()
}

// All returns one value of every table, in an order AutoMigrate can create them.
func All() []interface{} {
	return []interface{}{
		&TypeSession{},
		&TypeSourceRLI{},
		&TypeBindingMethod{},
		&Coordinates{},
		&RelatingObject{},
		&Session{},
		&Extent{},
		&File{},
		&Mark{},
		&RawRLI{},
		&RLI{},
		&RasterRLI{},
		&LinkedRLI{},
		&Object{},
		&Region{},
		&Target{},
	}
}
