package call

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LifecycleChannel carries call lifecycle transitions across service
// instances.
const LifecycleChannel = "calls:lifecycle"

// SessionEvent is one published lifecycle transition.
type SessionEvent struct {
	SessionID  string    `json:"sessionId"`
	Purpose    string    `json:"purpose"`
	State      State     `json:"state"`
	InstanceID string    `json:"instanceId"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher pushes lifecycle events to redis. A nil Publisher is valid
// and publishes nothing, so deployments without redis just skip it.
type Publisher struct {
	rdb        *redis.Client
	instanceID string
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{
		rdb:        rdb,
		instanceID: uuid.New().String(),
	}
}

func (p *Publisher) Publish(ctx context.Context, sessionID, purpose string, state State) error {
	if p == nil || p.rdb == nil {
		return nil
	}

	event := SessionEvent{
		SessionID:  sessionID,
		Purpose:    purpose,
		State:      state,
		InstanceID: p.instanceID,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}

	return p.rdb.Publish(ctx, LifecycleChannel, data).Err()
}
