package plan

import "time"

type Plan struct {
	ID             int       `db:"id" json:"id"`
	GymID          int       `db:"gym_id" json:"gym_id"`
	OwnerID        int       `db:"owner_id" json:"owner_id"`
	Title          string    `db:"title" json:"title"`
	Description    *string   `db:"description" json:"description,omitempty"`
	DurationInDays int       `db:"duration_in_days" json:"duration_in_days"`
	PriceCents     int64     `db:"price_cents" json:"price_cents"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePlanRequest struct {
	Title          string  `json:"title" binding:"required,max=120"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	DurationInDays int     `json:"duration_in_days" binding:"required"`
	PriceCents     int64   `json:"price_cents"`
}

// UpdatePlanRequest carries only the mutable fields; nil means unchanged.
type UpdatePlanRequest struct {
	Title          *string `json:"title" binding:"omitempty,max=120"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	DurationInDays *int    `json:"duration_in_days"`
	PriceCents     *int64  `json:"price_cents"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
