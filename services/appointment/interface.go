package appointment

import (
	"context"
	"sync"
	"time"

	apptRepo "medibook/database/repository/appointment"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/notification"
)

// AppointmentService defines the appointment lifecycle operations.
type AppointmentService interface {
	// Book creates a pending appointment for the owner, enforcing the
	// active-appointment cap.
	Book(ctx context.Context, ownerID string, req models.BookingRequest) (*models.Appointment, error)
	// InitiatePayment produces a payment link for an unpaid appointment
	// without mutating it.
	InitiatePayment(ctx context.Context, appointmentID string) (string, *models.Appointment, error)
	// Confirm completes the payment, confirms the appointment and queues a
	// confirmation email to the owner.
	Confirm(ctx context.Context, appointmentID, paymentID string) (*models.Appointment, error)
	// Cancel cancels an appointment whose payment is still pending.
	Cancel(ctx context.Context, appointmentID string) error
	// SubmitFeedback stores feedback on a completed appointment.
	SubmitFeedback(ctx context.Context, appointmentID, feedback string) (*models.Appointment, error)
	// ListByOwner returns the owner's appointments, ordered by date ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Appointment, error)
	// CompleteDue marks confirmed, fully paid appointments dated before the
	// cutoff as completed.
	CompleteDue(ctx context.Context, cutoff time.Time) (int64, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo     apptRepo.AppointmentRepository
	UserRepo userRepo.UserRepository
	Notifier notification.Enqueuer

	// Booking rules, wired from config.
	MaxActive      int
	PaymentBaseURL string
	PaymentAmount  int

	ownerLocks sync.Map // ownerID -> *sync.Mutex
}

// lockOwner serializes booking for a single owner within this process. The
// store transaction is the real guard; the lock keeps concurrent bookings
// from one instance out of each other's transaction retries.
func (s *DefaultAppointmentService) lockOwner(ownerID string) func() {
	v, _ := s.ownerLocks.LoadOrStore(ownerID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
