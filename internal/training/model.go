package training

import "time"

// Session is a bookable training offering. TrainerID and GymID are fixed at creation.
type Session struct {
	ID              int       `db:"id" json:"id"`
	TrainerID       int       `db:"trainer_id" json:"trainer_id"`
	GymID           int       `db:"gym_id" json:"gym_id"`
	Title           string    `db:"title" json:"title"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type CreateSessionRequest struct {
	Title           string  `json:"title" binding:"required,max=120"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	PriceCents      int64   `json:"price_cents"`
}

type UpdateSessionRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=120"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes *int    `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
