package model

import (
	"encoding/json"
	"time"
)

// AnalyticsEvent 前端行為事件，flags snapshot 記錄當下的功能旗標
type AnalyticsEvent struct {
	ID            int             `json:"id" db:"id"`
	UserID        *int            `json:"user_id,omitempty" db:"user_id"`
	SessionID     *string         `json:"session_id,omitempty" db:"session_id"`
	EventType     string          `json:"event_type" db:"event_type"`
	EventData     json.RawMessage `json:"event_data" db:"event_data"`
	FlagsSnapshot json.RawMessage `json:"feature_flags_snapshot" db:"feature_flags_snapshot"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type LogAnalyticsEventRequest struct {
	UserID        *int            `json:"user_id"`
	SessionID     *string         `json:"session_id"`
	EventType     string          `json:"event_type" binding:"required"`
	EventData     json.RawMessage `json:"event_data"`
	FlagsSnapshot json.RawMessage `json:"feature_flags_snapshot"`
}
