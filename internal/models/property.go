package models

import (
	"time"
)

// Property write-time bounds. Inputs below the minimums are clamped,
// absent values fall back to the defaults.
const (
	MinBHK      = 1
	MinBaths    = 1
	MinSqft     = 500
	DefaultSqft = 1000
)

// Property represents a brokerage property listing.
// All nullable fields use pointers to distinguish between zero values and NULL.
// Image fields hold either a base64 data URI or a generated placeholder URL.
type Property struct {
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Title       string    `gorm:"size:255;not null;column:title" json:"title"`
	Location    string    `gorm:"size:255;not null;column:location" json:"location"`
	FullAddress *string   `gorm:"type:text;column:full_address" json:"fullAddress,omitempty"`
	Type        string    `gorm:"size:50;index;column:type" json:"type"`
	Status      string    `gorm:"size:50;column:status" json:"status"`
	Description string    `gorm:"type:text;not null;column:description" json:"description"`
	Area        *string   `gorm:"size:100;index;column:area" json:"area,omitempty"`
	Image1      *string   `gorm:"type:text;column:image_1" json:"image1,omitempty"`
	Image2      *string   `gorm:"type:text;column:image_2" json:"image2,omitempty"`
	Image3      *string   `gorm:"type:text;column:image_3" json:"image3,omitempty"`
	BHK         int       `gorm:"not null;default:1;column:bhk" json:"bhk"`
	Baths       int       `gorm:"not null;default:1;column:baths" json:"baths"`
	Sqft        int       `gorm:"not null;default:1000;column:sqft" json:"sqft"`
	ID          int64     `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for the property listing records.
func (Property) TableName() string {
	return "properties"
}

// Normalize applies the write-time clamps and defaults: bhk and baths are
// raised to at least 1, sqft falls back to 1000 when absent and is raised
// to at least 500 otherwise.
func (p *Property) Normalize() {
	if p.BHK < MinBHK {
		p.BHK = MinBHK
	}
	if p.Baths < MinBaths {
		p.Baths = MinBaths
	}
	if p.Sqft == 0 {
		p.Sqft = DefaultSqft
	} else if p.Sqft < MinSqft {
		p.Sqft = MinSqft
	}
}

// Images returns the stored image references in slot order, skipping
// empty slots.
func (p *Property) Images() []string {
	var images []string
	for _, img := range []*string{p.Image1, p.Image2, p.Image3} {
		if img != nil && *img != "" {
			images = append(images, *img)
		}
	}
	return images
}
