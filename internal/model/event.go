package model

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusClosed    EventStatus = "closed"
)

type Event struct {
	ID          int         `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description,omitempty" db:"description"`
	EventDate   time.Time   `json:"event_date" db:"event_date"`
	Location    *string     `json:"location,omitempty" db:"location"`
	ImageURL    *string     `json:"image_url,omitempty" db:"image_url"`
	Status      EventStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	Location    *string   `json:"location"`
	ImageURL    *string   `json:"image_url"`
}

type UpdateEventParams struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	EventDate   *time.Time   `json:"event_date"`
	Location    *string      `json:"location"`
	ImageURL    *string      `json:"image_url"`
	Status      *EventStatus `json:"status"`
}
