package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-store/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository interface {
	Insert(ctx context.Context, event *model.AnalyticsEvent) error
	List(ctx context.Context, eventType string, limit int) ([]*model.AnalyticsEvent, error)
}

type AnalyticsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{
		pool: pool,
	}
}

func (r *AnalyticsRepositoryImpl) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (user_id, session_id, event_type, event_data, feature_flags_snapshot)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::jsonb), COALESCE($5, '{}'::jsonb))
	`

	_, err := r.pool.Exec(ctx, query,
		event.UserID, event.SessionID, event.EventType,
		event.EventData, event.FlagsSnapshot,
	)

	return err
}

func (r *AnalyticsRepositoryImpl) List(ctx context.Context, eventType string, limit int) ([]*model.AnalyticsEvent, error) {
	query := `
		SELECT id, user_id, session_id, event_type, event_data, feature_flags_snapshot, created_at
		FROM analytics_events
	`
	args := []interface{}{}

	if eventType != "" {
		query += ` WHERE event_type = $1`
		args = append(args, eventType)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.AnalyticsEvent, 0)

	for rows.Next() {
		var event model.AnalyticsEvent
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.SessionID,
			&event.EventType,
			&event.EventData,
			&event.FlagsSnapshot,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
