package models

type Coordinates struct {
	Base
	Latitude  *float64 `json:"latitude" gorm:"not null"`
	Longitude *float64 `json:"longitude" gorm:"not null"`
	Altitude  float64  `json:"altitude" gorm:"default:0"`
}

func (Coordinates) TableName() string { return "coordinates" }

func (c *Coordinates) Validate() error {
	if c.Latitude == nil {
		return required("coordinates", "latitude")
	}
	if c.Longitude == nil {
		return required("coordinates", "longitude")
	}
	return nil
}

// Extent is a quadrilateral; each corner may point at any Coordinates row,
// including the same one.
type Extent struct {
	Base
	TopLeftID  *uint `json:"top_left_id"`
	BotLeftID  *uint `json:"bot_left_id"`
	TopRightID *uint `json:"top_right_id"`
	BotRightID *uint `json:"bot_right_id"`

	TopLeft  *Coordinates `json:"-" gorm:"foreignKey:TopLeftID;constraint:OnDelete:CASCADE"`
	BotLeft  *Coordinates `json:"-" gorm:"foreignKey:BotLeftID;constraint:OnDelete:CASCADE"`
	TopRight *Coordinates `json:"-" gorm:"foreignKey:TopRightID;constraint:OnDelete:CASCADE"`
	BotRight *Coordinates `json:"-" gorm:"foreignKey:BotRightID;constraint:OnDelete:CASCADE"`
}

func (Extent) TableName() string { return "extent" }

func (e *Extent) Validate() error { return nil }

type Region struct {
	Base
	ExtentID *uint  `json:"extent_id"`
	Name     string `json:"name"`

	Extent *Extent `json:"-" gorm:"foreignKey:ExtentID;constraint:OnDelete:CASCADE"`
}

func (Region) TableName() string { return "region" }

func (r *Region) Validate() error { return nil }
