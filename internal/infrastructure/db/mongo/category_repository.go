package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sajilosewa/booking-system/internal/core/domain"
)

const categoriesCollection = "categories"

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

type mongoCategory struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Slug          string             `bson:"slug"`
	Description   string             `bson:"description"`
	Icon          string             `bson:"icon,omitempty"`
	Active        bool               `bson:"is_active"`
	StartingPrice float64            `bson:"starting_price"`
	ProviderCount int64              `bson:"provider_count"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mc mongoCategory) toDomain() *domain.Category {
	return &domain.Category{
		ID:            mc.ID.Hex(),
		Name:          mc.Name,
		Slug:          mc.Slug,
		Description:   mc.Description,
		Icon:          mc.Icon,
		Active:        mc.Active,
		StartingPrice: mc.StartingPrice,
		ProviderCount: mc.ProviderCount,
		CreatedAt:     mc.CreatedAt,
		UpdatedAt:     mc.UpdatedAt,
	}
}

// ListActive returns all active categories, highest provider count first.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "provider_count", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*domain.Category
	for cursor.Next(ctx) {
		var mc mongoCategory
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCategory
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug, "is_active": true}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return mc.toDomain(), nil
}

// SetProviderCount stores the recomputed denormalized count for a slug.
func (r *CategoryRepository) SetProviderCount(ctx context.Context, slug string, count int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{
		"$set": bson.M{
			"provider_count": count,
			"updated_at":     time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("set provider count: %w", err)
	}
	return nil
}

// seedCategories is the fixed service catalog. Seeding is idempotent: each
// entry is upserted by slug, preserving any provider_count already stored.
var seedCategories = []mongoCategory{
	{Name: "Plumbing", Slug: "plumbing", Description: "Professional plumbing services including repairs, installations, and maintenance", StartingPrice: 500},
	{Name: "Electrical", Slug: "electrical", Description: "Electrical repairs, installations, and safety inspections", StartingPrice: 300},
	{Name: "Cleaning", Slug: "cleaning", Description: "Home and office cleaning services", StartingPrice: 800},
	{Name: "Carpentry", Slug: "carpentry", Description: "Woodworking, furniture repair, and carpentry services", StartingPrice: 600},
	{Name: "Painting", Slug: "painting", Description: "Interior and exterior painting services", StartingPrice: 400},
	{Name: "AC Repair", Slug: "ac-repair", Description: "Air conditioner installation, repair, and maintenance", StartingPrice: 600},
	{Name: "Other", Slug: "other", Description: "Various other professional services", StartingPrice: 300},
}

// Seed upserts the fixed catalog entries.
func (r *CategoryRepository) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for _, c := range seedCategories {
		update := bson.M{
			"$set": bson.M{
				"name":           c.Name,
				"description":    c.Description,
				"starting_price": c.StartingPrice,
				"is_active":      true,
				"updated_at":     now,
			},
			"$setOnInsert": bson.M{
				"provider_count": 0,
				"created_at":     now,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := r.coll.UpdateOne(ctx, bson.M{"slug": c.Slug}, update, opts); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
	}
	return nil
}

// EnsureIndexes creates the unique slug and name indexes.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
