package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	"social_agent/internal/domain"
)

// PostMessage is the body published for every scheduled or rescheduled post.
type PostMessage struct {
	Action    string               `json:"action"` // "schedule" or "reschedule"
	Post      domain.ScheduledPost `json:"post"`
	Timestamp time.Time            `json:"timestamp"`
}

func encodeMessage(post domain.ScheduledPost, now time.Time) ([]byte, error) {
	action := post.Action
	if action == "" {
		action = domain.ActionSchedule
	}

	body, err := json.Marshal(PostMessage{
		Action:    action,
		Post:      post,
		Timestamp: now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	return body, nil
}
