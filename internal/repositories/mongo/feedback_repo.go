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

// FeedbackRepo wraps the feedbacks collection. The logical record is the
// latest per (interview, user) pair; Upsert overwrites, last write wins.
type FeedbackRepo struct{ col *mongo.Collection }

func NewFeedbackRepo(c *Client) (*FeedbackRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	colName := os.Getenv("FEEDBACKS_COLLECTION")
	if colName == "" {
		colName = "feedbacks"
	}

	r := &FeedbackRepo{col: db.Collection(colName)}

	_, _ = r.col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "interview_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return r, nil
}

// Upsert writes a feedback record. When feedback.ID names an existing
// record it is replaced in place; otherwise a new document is inserted.
func (r *FeedbackRepo) Upsert(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error) {
	if feedback.ID == "" {
		return nil, errors.New("feedback id required")
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": feedback.ID}, feedback, opts); err != nil {
		return nil, err
	}
	return feedback, nil
}

// GetByID retrieves a feedback record by identifier.
func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// GetLatest retrieves the most recent feedback for an (interview, user)
// pair.
func (r *FeedbackRepo) GetLatest(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	filter := bson.M{"interview_id": interviewID, "user_id": userID}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var feedback models.Feedback
	err := r.col.FindOne(ctx, filter, opts).Decode(&feedback)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListAll retrieves feedback records in creation order, for the export
// job. A non-positive limit means no cap.
func (r *FeedbackRepo) ListAll(ctx context.Context, limit int64) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Feedback
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
