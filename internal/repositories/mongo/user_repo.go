package mongo

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/repositories"
)

// UserRepo mirrors identity-provider users locally. Records are created
// at first sight of a token's subject and never deleted by this service.
type UserRepo struct{ col *mongo.Collection }

func NewUserRepo(c *Client) (*UserRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	colName := os.Getenv("USERS_COLLECTION")
	if colName == "" {
		colName = "users"
	}

	return &UserRepo{col: db.Collection(colName)}, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser records the identity-provider fields for a subject if not
// seen before. Existing records keep their original values.
func (r *UserRepo) EnsureUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return errors.New("user id required")
	}
	existing := r.col.FindOne(ctx, bson.M{"_id": user.ID})
	if existing.Err() == nil {
		return nil
	}
	if !errors.Is(existing.Err(), mongo.ErrNoDocuments) {
		return existing.Err()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, user)
	return err
}
