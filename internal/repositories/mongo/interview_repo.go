package mongo

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/repositories"
)

// InterviewRepo wraps the interviews collection.
type InterviewRepo struct{ col *mongo.Collection }

// NewInterviewRepo connects to the collection and ensures the listing index.
func NewInterviewRepo(c *Client) (*InterviewRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	colName := os.Getenv("INTERVIEWS_COLLECTION")
	if colName == "" {
		colName = "interviews"
	}

	r := &InterviewRepo{col: db.Collection(colName)}

	_, _ = r.col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return r, nil
}

// Create inserts a new interview. Interviews are immutable after this.
func (r *InterviewRepo) Create(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	if interview.ID == "" {
		return nil, errors.New("interview id required")
	}
	if len(interview.Questions) == 0 {
		return nil, errors.New("interview must carry at least one question")
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// GetByID retrieves an interview by its identifier.
func (r *InterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// ListByUser retrieves a user's interviews, newest first.
func (r *InterviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Interview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLatest retrieves other users' finalized interviews, newest first,
// capped at limit.
func (r *InterviewRepo) ListLatest(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error) {
	if limit <= 0 {
		limit = models.DefaultLatestLimit
	}
	filter := bson.M{
		"finalized": true,
		"user_id":   bson.M{"$ne": excludeUserID},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Interview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
