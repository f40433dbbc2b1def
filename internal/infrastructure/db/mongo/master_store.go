package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careerstack/identity-federation/internal/core/domain"
)

const (
	usersCollection = "unified_users"
	linksCollection = "platform_links"
)

// MasterStore reads unified identities and platform links from the master
// identity database. The only write it performs is the login timestamp.
type MasterStore struct {
	users *mongo.Collection
	links *mongo.Collection
}

func NewMasterStore(db *mongo.Database) *MasterStore {
	return &MasterStore{
		users: db.Collection(usersCollection),
		links: db.Collection(linksCollection),
	}
}

type mongoUser struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Email                string             `bson:"email"`
	PasswordHash         string             `bson:"password_hash"`
	FullName             string             `bson:"full_name"`
	CreatedAt            int64              `bson:"created_at"`
	LastLoginAt          int64              `bson:"last_login_at,omitempty"`
	HasFreelancerProfile bool               `bson:"has_freelancer_profile"`
	HasLearningProfile   bool               `bson:"has_learning_profile"`
}

type mongoLink struct {
	UnifiedUserID  string `bson:"unified_user_id"`
	Platform       string `bson:"platform"`
	PlatformUserID string `bson:"platform_user_id"`
}

// FindUserByEmail looks a user up by email. Emails are stored lowercased and
// the query is lowercased too, making the lookup case-insensitive.
func (s *MasterStore) FindUserByEmail(ctx context.Context, email string) (*domain.UnifiedUser, error) {
	var mu mongoUser
	if err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomainUser(mu), nil
}

func (s *MasterStore) FindUserByID(ctx context.Context, id string) (*domain.UnifiedUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return toDomainUser(mu), nil
}

func (s *MasterStore) FindLinksByUser(ctx context.Context, unifiedUserID string) ([]domain.PlatformLink, error) {
	cur, err := s.links.Find(ctx, bson.M{"unified_user_id": unifiedUserID})
	if err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}
	defer cur.Close(ctx)

	var links []domain.PlatformLink
	for cur.Next(ctx) {
		var ml mongoLink
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode link: %w", err)
		}
		links = append(links, domain.PlatformLink{
			UnifiedUserID:  ml.UnifiedUserID,
			Platform:       domain.Platform(ml.Platform),
			PlatformUserID: ml.PlatformUserID,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

// RecordLogin stamps last_login_at. Concurrent logins for the same user race
// last-writer-wins; this is an audit field, not a correctness-critical value.
func (s *MasterStore) RecordLogin(ctx context.Context, unifiedUserID string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(unifiedUserID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if _, err := s.users.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"last_login_at": at.Unix()}}); err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

func toDomainUser(mu mongoUser) *domain.UnifiedUser {
	return &domain.UnifiedUser{
		ID:                   mu.ID.Hex(),
		Email:                mu.Email,
		PasswordHash:         mu.PasswordHash,
		FullName:             mu.FullName,
		CreatedAt:            unixToTime(mu.CreatedAt),
		LastLoginAt:          unixToTime(mu.LastLoginAt),
		HasFreelancerProfile: mu.HasFreelancerProfile,
		HasLearningProfile:   mu.HasLearningProfile,
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
