package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

// PlatformProfileStore reads profile documents from one product's own
// database. Documents are keyed by the platform-local user id; their shape
// is opaque to the federation layer and relayed as-is.
type PlatformProfileStore struct {
	coll *mongo.Collection
}

// NewPlatformProfileStore wraps the named collection of a platform database.
// Each product keeps its profile documents in its own collection
// ("freelancer_profiles", "learning_profiles", ...).
func NewPlatformProfileStore(db *mongo.Database, collection string) *PlatformProfileStore {
	return &PlatformProfileStore{coll: db.Collection(collection)}
}

func (s *PlatformProfileStore) FindPlatformRecord(ctx context.Context, platformUserID string) (domain.PlatformRecord, error) {
	var doc bson.M
	if err := s.coll.FindOne(ctx, bson.M{"user_id": platformUserID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlatformRecordMissing
		}
		return nil, fmt.Errorf("find platform record: %w", err)
	}

	record := make(domain.PlatformRecord, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		record[k] = v
	}
	return record, nil
}
