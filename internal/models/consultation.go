package models

import (
	"strings"
	"time"
)

// Consultation request states. Transitions are forward-only:
// pending -> confirmed -> completed.
const (
	ConsultationPending   = "pending"
	ConsultationConfirmed = "confirmed"
	ConsultationCompleted = "completed"
)

// Consultation represents a consultation request submitted through the
// public site. Name is stored whole and split into first/last components
// at insert time.
type Consultation struct {
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Name          string    `gorm:"size:200;not null;column:name" json:"name"`
	FirstName     string    `gorm:"size:100;column:first_name" json:"firstName"`
	LastName      string    `gorm:"size:100;column:last_name" json:"lastName"`
	Email         string    `gorm:"size:255;not null;index;column:email" json:"email"`
	Phone         string    `gorm:"size:20;not null;column:phone" json:"phone"`
	PreferredDate string    `gorm:"size:20;not null;column:preferred_date" json:"preferredDate"`
	PreferredTime string    `gorm:"size:20;not null;column:preferred_time" json:"preferredTime"`
	ServiceType   string    `gorm:"size:100;not null;column:service_type" json:"serviceType"`
	Message       *string   `gorm:"type:text;column:message" json:"message,omitempty"`
	Status        string    `gorm:"size:20;default:'pending';column:status" json:"status"`
	ID            int64     `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for consultation requests.
func (Consultation) TableName() string {
	return "consultations"
}

// SplitName fills FirstName and LastName from Name: the first
// whitespace-separated token becomes the first name, the remainder the
// last name.
func (c *Consultation) SplitName() {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		c.FirstName = ""
		c.LastName = ""
		return
	}
	c.FirstName = fields[0]
	c.LastName = strings.Join(fields[1:], " ")
}

// ValidStatus reports whether s is one of the known consultation states.
func ValidStatus(s string) bool {
	switch s {
	case ConsultationPending, ConsultationConfirmed, ConsultationCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a consultation may move from one status to
// the next. Only single forward steps are allowed.
func CanTransition(from, to string) bool {
	switch from {
	case ConsultationPending:
		return to == ConsultationConfirmed
	case ConsultationConfirmed:
		return to == ConsultationCompleted
	}
	return false
}
