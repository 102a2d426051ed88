package model

import "time"

// User 使用者模型，attributes 為 ABAC 用的任意屬性
type User struct {
	ID           int            `json:"id" db:"id"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Name         string         `json:"name" db:"name"`
	Phone        *string        `json:"phone,omitempty" db:"phone"`
	Role         Role           `json:"role" db:"role"`
	Attributes   map[string]any `json:"attributes,omitempty" db:"attributes"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     string  `json:"name" binding:"required"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthUser 認證層解出來的 principal，掛在 request context 上
type AuthUser struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
