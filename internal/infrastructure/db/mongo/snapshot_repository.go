package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// CollectionOrders holds one document per pseudonymous user, keyed by _id.
const CollectionOrders = "orders"

// scanTimeout bounds a full collection scan for the cross-user summary.
const scanTimeout = 2 * time.Minute

type SnapshotRepository struct {
	col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection(CollectionOrders)}
}

// Replace writes the snapshot as a whole, creating the document if needed.
// Readers observe either the previous document or the new one.
func (r *SnapshotRepository) Replace(ctx context.Context, s *domain.UserSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, byUserID(s.UserID), snapshotDocument(s), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot %s: %w", s.UserID, err)
	}
	return nil
}

// FindByUserID retrieves the snapshot stored under userID.
func (r *SnapshotRepository) FindByUserID(ctx context.Context, userID string) (*domain.UserSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.UserSnapshot
	err := r.col.FindOne(ctx, byUserID(userID)).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Each streams every snapshot in _id order. Iteration stops at the first
// error returned by fn.
func (r *SnapshotRepository) Each(ctx context.Context, fn func(*domain.UserSnapshot) error) error {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("find snapshots: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var s domain.UserSnapshot
		if err := cur.Decode(&s); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		if err := fn(&s); err != nil {
			return err
		}
	}
	return cur.Err()
}

// EnsureIndexes creates the secondary indexes used by operators when
// inspecting the collection. The _id index always exists.
func (r *SnapshotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func byUserID(userID string) bson.D {
	return bson.D{{Key: "_id", Value: userID}}
}

// snapshotDocument guarantees arrays rather than nulls are stored for empty
// histories.
func snapshotDocument(s *domain.UserSnapshot) *domain.UserSnapshot {
	doc := *s
	if doc.Orders == nil {
		doc.Orders = []domain.OrderRecord{}
	}
	if doc.Items == nil {
		doc.Items = []domain.ItemRecord{}
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	return &doc
}
