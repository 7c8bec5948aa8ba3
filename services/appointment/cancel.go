package appointment

import (
	"context"

	"medibook/models"
)

// Cancel cancels a pending or confirmed appointment. A completed payment
// locks cancellation, and terminal states stay terminal.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, appointmentID string) error {
	matched, err := s.Repo.Cancel(appointmentID)
	if err != nil {
		return err
	}
	if matched {
		return nil
	}

	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return err
	}
	if appt == nil {
		return &NotFoundError{Message: "Appointment not found."}
	}
	if appt.PaymentStatus == models.PaymentCompleted {
		return &AlreadyPaidError{Message: "Cannot cancel a completed appointment."}
	}
	return &InvalidStateError{Message: "Appointment is already cancelled or completed."}
}
