package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NoAuthorityFound is the routing label used when the classifier cannot
// attribute an image to a known authority.
const NoAuthorityFound = "No Authority Found"

// Report is a geotagged civic-issue submission. ReportIsFor carries the
// authority label derived from the image classifier at creation time and
// drives the authority listing route. The owning user is immutable; the
// responder is assigned once, to the first authority user that updates the
// report.
type Report struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Place        string     `gorm:"size:255;not null" json:"place"`
	Caption      string     `gorm:"type:text;not null" json:"caption"`
	ReportIsFor  string     `gorm:"size:100;not null;index" json:"report_is_for"`
	Image        string     `gorm:"size:500;not null" json:"image"`
	Rating       int        `gorm:"not null" json:"rating"`
	Lat          string     `gorm:"size:50;not null" json:"lat"`
	Lng          string     `gorm:"size:50;not null" json:"lng"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	User         *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ResponderID  *uuid.UUID `gorm:"type:uuid;index" json:"responderId,omitempty"`
	Responder    *User      `gorm:"foreignKey:ResponderID" json:"responder,omitempty"`
	Responded    int        `gorm:"not null;default:0" json:"responded"`
	Comment      string     `gorm:"type:text" json:"comment"`
	ResponseDate string     `gorm:"size:64" json:"responseDate"`

	// Raw classifier output kept for auditability of the routing decision.
	Classification datatypes.JSON `gorm:"type:jsonb" json:"classification,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
