package appointment

import (
	"context"
	"time"

	apptRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book validates the booking details, enforces the active-appointment cap and
// creates a pending appointment with a pending payment.
func (s *DefaultAppointmentService) Book(ctx context.Context, ownerID string, req models.BookingRequest) (*models.Appointment, error) {
	if req.Type == "" || req.Date == "" || req.Time == "" || req.Reason == "" || req.Name == "" || req.Mobile == "" {
		return nil, &ValidationError{Message: "All fields (type, date, time, reason, name, mobile) are required."}
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, &ValidationError{Message: "Date must be in YYYY-MM-DD format."}
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		UserID:        ownerID,
		Type:          req.Type,
		Date:          date,
		Time:          req.Time,
		Reason:        req.Reason,
		Name:          req.Name,
		Mobile:        req.Mobile,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	if err := s.Repo.CreateWithCap(ctx, appt, s.MaxActive); err != nil {
		if err == apptRepo.ErrCapExceeded {
			return nil, &LimitExceededError{Message: "You have reached the maximum number of appointments allowed."}
		}
		utils.GetLogger().Error("Book: failed to create appointment",
			zap.String("userID", ownerID), zap.Error(err))
		return nil, err
	}

	return appt, nil
}

// ListByOwner returns all appointments owned by the user, ordered by date ascending.
func (s *DefaultAppointmentService) ListByOwner(ctx context.Context, ownerID string) ([]models.Appointment, error) {
	return s.Repo.GetByOwner(ownerID)
}
