package appointment

import (
	"context"
	"fmt"

	"medibook/models"
)

// SubmitFeedback stores feedback text on a completed appointment.
func (s *DefaultAppointmentService) SubmitFeedback(ctx context.Context, appointmentID, feedback string) (*models.Appointment, error) {
	if feedback == "" {
		return nil, &ValidationError{Message: "Appointment ID and feedback are required."}
	}

	matched, err := s.Repo.SetFeedback(appointmentID, feedback)
	if err != nil {
		return nil, err
	}
	if !matched {
		appt, err := s.Repo.GetByID(appointmentID)
		if err != nil {
			return nil, err
		}
		if appt == nil {
			return nil, &NotFoundError{Message: "Appointment not found."}
		}
		return nil, &InvalidStateError{Message: "Feedback can only be submitted for completed appointments."}
	}

	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil || appt == nil {
		return nil, fmt.Errorf("failed to reload appointment %s after feedback: %w", appointmentID, err)
	}
	return appt, nil
}
