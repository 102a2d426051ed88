package model

import "time"

// FeatureFlag 功能旗標，flag_value 為開關狀態
type FeatureFlag struct {
	FlagKey     string    `json:"flag_key" db:"flag_key"`
	FlagValue   bool      `json:"flag_value" db:"flag_value"`
	Description *string   `json:"description,omitempty" db:"description"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UpsertFlagRequest struct {
	FlagValue   *bool   `json:"flag_value" binding:"required"`
	Description *string `json:"description"`
}
