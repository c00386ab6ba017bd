package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sajilosewa/booking-system/internal/core/domain"
	"github.com/sajilosewa/booking-system/internal/core/ports"
)

const appointmentsCollection = "appointments"

// AppointmentRepository implements ports.AppointmentRepository using MongoDB.
// The human-readable appointment id is the document key, so uniqueness of
// generated ids is enforced by the _id index itself.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

// Insert persists a new appointment document.
func (r *AppointmentRepository) Insert(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateAppointment
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &a, nil
}

// List returns a page of appointments matching filter, newest first.
func (r *AppointmentRepository) List(ctx context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.ProviderID != "" {
		query["provider_id"] = filter.ProviderID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Appointment
	for cursor.Next(ctx) {
		var a domain.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("decode appointment: %w", err)
		}
		items = append(items, &a)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return items, total, nil
}

// UpdateStatus applies a status transition: sets the new status and notes,
// stamps any lifecycle timestamp carried by the update, and appends the
// history entry. Single-document write; concurrent transitions on the same
// appointment are last-writer-wins.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, update ports.StatusUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     update.Status,
		"updated_at": update.UpdatedAt,
	}
	if update.AdminNotes != nil {
		set["admin_notes"] = *update.AdminNotes
	}
	if update.ProviderNotes != nil {
		set["provider_notes"] = *update.ProviderNotes
	}
	if update.AdminApprovedAt != nil {
		set["admin_approved_at"] = *update.AdminApprovedAt
	}
	if update.ProviderAcceptedAt != nil {
		set["provider_accepted_at"] = *update.ProviderAcceptedAt
	}
	if update.CompletedAt != nil {
		set["completed_at"] = *update.CompletedAt
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":  set,
		"$push": bson.M{"status_history": update.History},
	})
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// CountByStatus aggregates appointment counts per status.
func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate appointment stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := make(map[domain.AppointmentStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status domain.AppointmentStatus `bson:"_id"`
			Count  int64                    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode stats row: %w", err)
		}
		stats[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("aggregate appointment stats: %w", err)
	}
	return stats, nil
}

// EnsureIndexes creates the indexes backing the listing queries.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
