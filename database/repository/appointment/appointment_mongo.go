package apptRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database("medibook").Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Backs the active-appointment cap count.
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		// Backs the per-user date-ordered listing.
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// activeFilter matches the owner's appointments that count against the cap.
func activeFilter(userID string) bson.M {
	return bson.M{
		"userId": userID,
		"status": bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed}},
	}
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// GetByOwner retrieves all appointments of a user, ordered by date ascending.
func (r *MongoAppointmentRepo) GetByOwner(userID string) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// CountActiveByOwner counts the owner's pending and confirmed appointments.
func (r *MongoAppointmentRepo) CountActiveByOwner(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, activeFilter(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to count active appointments for user %s: %w", userID, err)
	}
	return count, nil
}

// updateMatched applies a $set update and reports whether a document matched.
func (r *MongoAppointmentRepo) updateMatched(filter, set bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update appointment: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// Confirm marks a pending appointment confirmed with a completed payment.
func (r *MongoAppointmentRepo) Confirm(id, paymentID string) (bool, error) {
	filter := bson.M{
		"id":            id,
		"status":        models.StatusPending,
		"paymentStatus": models.PaymentPending,
	}
	set := bson.M{
		"status":        models.StatusConfirmed,
		"paymentStatus": models.PaymentCompleted,
		"paymentId":     paymentID,
	}
	return r.updateMatched(filter, set)
}

// Cancel cancels a pending or confirmed appointment whose payment is still pending.
func (r *MongoAppointmentRepo) Cancel(id string) (bool, error) {
	filter := bson.M{
		"id":            id,
		"status":        bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed}},
		"paymentStatus": models.PaymentPending,
	}
	return r.updateMatched(filter, bson.M{"status": models.StatusCancelled})
}

// SetFeedback stores feedback on a completed appointment.
func (r *MongoAppointmentRepo) SetFeedback(id, feedback string) (bool, error) {
	filter := bson.M{"id": id, "status": models.StatusCompleted}
	return r.updateMatched(filter, bson.M{"feedback": feedback})
}

// CompleteDue marks confirmed, fully paid appointments dated before the
// cutoff as completed.
func (r *MongoAppointmentRepo) CompleteDue(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":        models.StatusConfirmed,
		"paymentStatus": models.PaymentCompleted,
		"date":          bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.StatusCompleted,
		"updatedAt": time.Now(),
	}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete due appointments: %w", err)
	}
	return result.ModifiedCount, nil
}
