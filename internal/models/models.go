package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// DefaultSource is the arrival tag used when /start carries no argument.
const DefaultSource = "direct"

// Lead is one prospective customer, keyed by Telegram user id
type Lead struct {
	UserID            int64
	Name              string
	Phone             string
	Source            string
	Geography         string
	ObjectType        string
	Condition         string
	Metrage           int // square meters
	RepairFormat      string
	KeysReady         string
	Deadline          string
	MainFear          string
	Budget            string
	AppointmentTime   string
	AppointmentStatus AppointmentStatus
	SurveyCompleted   bool
	StartTime         *time.Time
	CreatedAt         time.Time
}

// Contact is a phone number shared through the contact button
type Contact struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	UserID      int64
}

// User is the sender of an inbound update
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// DisplayName joins first and last name the way it is stored on the lead.
func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// BroadcastMedia caches an uploaded broadcast asset by broadcast name
type BroadcastMedia struct {
	BroadcastType string
	FileID        string
	Caption       string
	UpdatedAt     time.Time
}
