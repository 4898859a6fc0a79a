package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender,omitempty"`
	Height       float64   `json:"height,omitempty"` // cm
	Weight       float64   `json:"weight,omitempty"` // kg
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
