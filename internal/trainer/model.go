package trainer

import (
	"time"

	"github.com/lib/pq"
)

// Trainer is the profile created when a member accepts a promotion.
type Trainer struct {
	ID             int            `db:"id" json:"id"`
	UserID         int            `db:"user_id" json:"user_id"`
	GymID          int            `db:"gym_id" json:"gym_id"`
	Specialization pq.StringArray `db:"specialization" json:"specialization"`
	Bio            *string        `db:"bio" json:"bio,omitempty"`
	RatingAverage  float64        `db:"rating_average" json:"rating_average"`
	RatingCount    int            `db:"rating_count" json:"rating_count"`
	IsActive       bool           `db:"is_active" json:"is_active"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

type UpdateProfileRequest struct {
	Specialization []string `json:"specialization" binding:"omitempty,max=10,dive,min=2,max=50"`
	Bio            *string  `json:"bio" binding:"omitempty,max=1000"`
}
