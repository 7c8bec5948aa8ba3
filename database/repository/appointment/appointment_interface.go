package apptRepo

import (
	"context"
	"errors"
	"time"

	"medibook/models"
)

// ErrCapExceeded is returned by CreateWithCap when the owner already has the
// maximum number of active appointments.
var ErrCapExceeded = errors.New("active appointment limit reached")

// AppointmentRepository defines methods for appointment data access.
//
// The transition methods (Confirm, Cancel, SetFeedback) carry their lifecycle
// precondition in the database filter, so a transition either applies
// atomically or matches nothing. They report whether a document was updated;
// callers classify a miss by re-reading the record.
type AppointmentRepository interface {
	// CreateWithCap inserts the appointment only if the owner holds fewer
	// than maxActive appointments with status pending or confirmed. The
	// count and insert run in one transaction.
	CreateWithCap(ctx context.Context, appt *models.Appointment, maxActive int) error
	// GetByID retrieves an appointment by its unique ID. Returns (nil, nil)
	// when no such appointment exists.
	GetByID(id string) (*models.Appointment, error)
	// GetByOwner retrieves all appointments of a user, ordered by date ascending.
	GetByOwner(userID string) ([]models.Appointment, error)
	// CountActiveByOwner counts the owner's pending and confirmed appointments.
	CountActiveByOwner(userID string) (int64, error)
	// Confirm marks a pending appointment confirmed with a completed payment.
	Confirm(id, paymentID string) (bool, error)
	// Cancel cancels a pending or confirmed appointment whose payment is
	// still pending.
	Cancel(id string) (bool, error)
	// SetFeedback stores feedback on a completed appointment.
	SetFeedback(id, feedback string) (bool, error)
	// CompleteDue marks confirmed, fully paid appointments dated before the
	// cutoff as completed. Returns the number of appointments updated.
	CompleteDue(cutoff time.Time) (int64, error)
}
