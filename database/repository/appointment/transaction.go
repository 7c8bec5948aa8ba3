package apptRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithCap inserts the appointment only if the owner holds fewer than
// maxActive appointments with status pending or confirmed. Counting and
// inserting run inside one Mongo transaction so concurrent bookings for the
// same owner cannot slip past the cap between the check and the write.
func (r *MongoAppointmentRepo) CreateWithCap(ctx context.Context, appt *models.Appointment, maxActive int) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		count, err := r.coll.CountDocuments(sc, activeFilter(appt.UserID))
		if err != nil {
			return fmt.Errorf("count active appointments failed: %w", err)
		}
		if count >= int64(maxActive) {
			return ErrCapExceeded
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrCapExceeded {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
