package appointment

import (
	"context"
	"time"

	"medibook/utils"

	"go.uber.org/zap"
)

// CompleteDue finishes confirmed, fully paid appointments whose date has
// passed. No user-facing operation drives this transition; the background
// sweep is the only caller. Appointments still awaiting payment are left
// alone so cancellation stays possible.
func (s *DefaultAppointmentService) CompleteDue(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.Repo.CompleteDue(cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		utils.GetLogger().Info("completed past appointments",
			zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
