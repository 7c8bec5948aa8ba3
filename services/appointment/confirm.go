package appointment

import (
	"context"
	"fmt"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// placeholderPaymentID stands in when the caller supplies no payment id.
// Payment ids are not verified against a processor; this is a documented
// simplification of the payment step.
const placeholderPaymentID = "dummy-payment-id"

// Confirm marks the payment completed, confirms the appointment and queues a
// confirmation email to the owner. The email is fire-and-forget: a queue
// failure is logged and the confirmation stands.
func (s *DefaultAppointmentService) Confirm(ctx context.Context, appointmentID, paymentID string) (*models.Appointment, error) {
	if paymentID == "" {
		paymentID = placeholderPaymentID
	}

	matched, err := s.Repo.Confirm(appointmentID, paymentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, s.classifyConfirmMiss(appointmentID)
	}

	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil || appt == nil {
		return nil, fmt.Errorf("failed to reload confirmed appointment %s: %w", appointmentID, err)
	}

	s.queueConfirmationEmail(ctx, appt)
	return appt, nil
}

// classifyConfirmMiss explains why the conditional confirm update matched nothing.
func (s *DefaultAppointmentService) classifyConfirmMiss(appointmentID string) error {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return err
	}
	if appt == nil {
		return &NotFoundError{Message: "Appointment not found."}
	}
	if appt.PaymentStatus == models.PaymentCompleted {
		return &AlreadyPaidError{Message: "Payment already completed."}
	}
	return &InvalidStateError{Message: "Appointment can no longer be confirmed."}
}

func (s *DefaultAppointmentService) queueConfirmationEmail(ctx context.Context, appt *models.Appointment) {
	logger := utils.GetLogger()

	owner, err := s.UserRepo.GetByID(appt.UserID)
	if err != nil || owner == nil {
		logger.Warn("Confirm: could not resolve owner for confirmation email",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return
	}

	payload := models.EmailPayload{
		To:      owner.Email,
		Subject: "Appointment Confirmation",
		Body: fmt.Sprintf(
			"Hello, your appointment is confirmed!\n\nDetails:\n- Type: %s\n- Date: %s\n- Time: %s\n\nThank you!",
			appt.Type, appt.Date.Format("2006-01-02"), appt.Time,
		),
	}
	if err := s.Notifier.EnqueueEmail(ctx, payload); err != nil {
		logger.Warn("Confirm: failed to queue confirmation email",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
