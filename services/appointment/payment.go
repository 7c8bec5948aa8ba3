package appointment

import (
	"context"
	"fmt"

	"medibook/models"
)

// InitiatePayment produces a payment link for an unpaid appointment. The link
// is simulated: it encodes the appointment id and the configured flat amount,
// and nothing about the appointment changes until Confirm is called.
func (s *DefaultAppointmentService) InitiatePayment(ctx context.Context, appointmentID string) (string, *models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return "", nil, err
	}
	if appt == nil {
		return "", nil, &NotFoundError{Message: "Appointment not found."}
	}
	if appt.PaymentStatus == models.PaymentCompleted {
		return "", nil, &AlreadyPaidError{Message: "Payment already completed."}
	}

	link := fmt.Sprintf("%s/pay?appointmentId=%s&amount=%d", s.PaymentBaseURL, appointmentID, s.PaymentAmount)
	return link, appt, nil
}
