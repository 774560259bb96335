package models

import (
	"time"

	"github.com/google/uuid"
)

// User types.
const (
	UserTypeEndUser   = "End User"
	UserTypeAuthority = "Authority"
	UserTypeSuperUser = "Super User"
)

// Authority types reports can be routed to.
const (
	AuthorityRDA  = "RDA"
	AuthorityZEMA = "ZEMA"
	AuthorityNone = "No Authority"
)

// User is an account holder: either a citizen submitting reports or an
// authority-affiliated responder. Username is derived from email+firstName+
// lastName at registration and is unique alongside email, phone and nrc.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username      string    `gorm:"size:500;not null;uniqueIndex" json:"username"`
	Password      string    `gorm:"not null" json:"-"`
	ProfileImage  string    `gorm:"size:500" json:"profileImage"`
	Nrc           string    `gorm:"size:50;not null;uniqueIndex" json:"nrc"`
	Phone         string    `gorm:"size:30;not null;uniqueIndex" json:"phone"`
	FirstName     string    `gorm:"size:100;not null" json:"firstName"`
	LastName      string    `gorm:"size:100;not null" json:"lastName"`
	OtherNames    string    `gorm:"size:100" json:"otherNames"`
	UserType      string    `gorm:"size:20;default:'End User'" json:"userType"`
	AuthorityType string    `gorm:"size:20;default:'No Authority'" json:"authorityType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
