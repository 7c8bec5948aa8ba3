package models

import "time"

// Lifecycle status values for an appointment.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment status values. Payment only ever moves pending -> completed.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Appointment represents one booking request owned by a user.
type Appointment struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Type          string    `bson:"type" json:"type"`
	Date          time.Time `bson:"date" json:"date"`
	Time          string    `bson:"time" json:"time"` // e.g. "10:00 AM"
	Reason        string    `bson:"reason" json:"reason"`
	Name          string    `bson:"name" json:"name"`
	Mobile        string    `bson:"mobile" json:"mobile"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID     string    `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Feedback      string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the appointment counts against the booking cap.
func (a *Appointment) Active() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// BookingRequest holds the details supplied when booking an appointment.
type BookingRequest struct {
	Type   string `json:"type"`
	Date   string `json:"date"` // "YYYY-MM-DD"
	Time   string `json:"time"`
	Reason string `json:"reason"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}
