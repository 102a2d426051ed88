package repository

import (
	"context"
	"go-gin-ticket-store/internal/model"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeatureFlagRepository interface {
	List(ctx context.Context) ([]*model.FeatureFlag, error)
	FindByKey(ctx context.Context, key string) (*model.FeatureFlag, error)
	Upsert(ctx context.Context, flag *model.FeatureFlag) (*model.FeatureFlag, error)
}

type FeatureFlagRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewFeatureFlagRepository(pool *pgxpool.Pool) FeatureFlagRepository {
	return &FeatureFlagRepositoryImpl{
		pool: pool,
	}
}

func (r *FeatureFlagRepositoryImpl) List(ctx context.Context) ([]*model.FeatureFlag, error) {
	query := `
		SELECT flag_key, flag_value, description, updated_at
		FROM feature_flags
		ORDER BY flag_key ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := make([]*model.FeatureFlag, 0)

	for rows.Next() {
		var flag model.FeatureFlag
		err := rows.Scan(
			&flag.FlagKey,
			&flag.FlagValue,
			&flag.Description,
			&flag.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		flags = append(flags, &flag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return flags, nil
}

func (r *FeatureFlagRepositoryImpl) FindByKey(ctx context.Context, key string) (*model.FeatureFlag, error) {
	query := `
		SELECT flag_key, flag_value, description, updated_at
		FROM feature_flags
		WHERE flag_key = $1
	`

	var flag model.FeatureFlag
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&flag.FlagKey,
		&flag.FlagValue,
		&flag.Description,
		&flag.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, err
	}

	return &flag, nil
}

func (r *FeatureFlagRepositoryImpl) Upsert(ctx context.Context, flag *model.FeatureFlag) (*model.FeatureFlag, error) {
	query := `
		INSERT INTO feature_flags (flag_key, flag_value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (flag_key) DO UPDATE
		SET flag_value = EXCLUDED.flag_value,
			description = COALESCE(EXCLUDED.description, feature_flags.description),
			updated_at = now()
		RETURNING flag_key, flag_value, description, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		flag.FlagKey, flag.FlagValue, flag.Description,
	).Scan(
		&flag.FlagKey,
		&flag.FlagValue,
		&flag.Description,
		&flag.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return flag, nil
}
