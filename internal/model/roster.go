package model

import "time"

// RosterMember represents a guild member on the managed roster
type RosterMember struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Class       *string   `json:"class,omitempty"`
	Role        *string   `json:"role,omitempty"`
	PowerRating *int      `json:"power_rating,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// AttendanceRecord represents historical attendance for a past activity
type AttendanceRecord struct {
	ID         string    `json:"id"`
	EventName  string    `json:"event_name"`
	EventDate  time.Time `json:"event_date"`
	MemberName string    `json:"member_name"`
	Attended   bool      `json:"attended"`
	RecordedOn time.Time `json:"recorded_on"`
}
