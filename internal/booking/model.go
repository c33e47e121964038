package booking

import (
	"strings"
	"time"

	"github.com/FransiTsena/fitme-sub001/internal/apperr"
	"github.com/FransiTsena/fitme-sub001/internal/payment"
)

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"

	dateLayout = "2006-01-02"
)

var (
	ErrInvalidDate     = apperr.Wrap(apperr.ErrValidation, "scheduled_date must be YYYY-MM-DD")
	ErrEmptyTimeSlot   = apperr.Wrap(apperr.ErrValidation, "time_slot is required")
	ErrInvalidStatus   = apperr.Wrap(apperr.ErrValidation, "status must be completed or cancelled")
	ErrTrainerOnlyDone = apperr.Wrap(apperr.ErrUnauthorized, "only the trainer can mark a booking completed")
)

type Booking struct {
	ID            int       `db:"id" json:"id"`
	SessionID     int       `db:"session_id" json:"session_id"`
	TrainerID     int       `db:"trainer_id" json:"trainer_id"`
	MemberID      int       `db:"member_id" json:"member_id"`
	GymID         int       `db:"gym_id" json:"gym_id"`
	PaymentID     int       `db:"payment_id" json:"payment_id"`
	ScheduledDate time.Time `db:"scheduled_date" json:"scheduled_date"`
	TimeSlot      string    `db:"time_slot" json:"time_slot"`
	Status        Status    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type BookingWithDetails struct {
	Booking
	SessionTitle string `db:"session_title" json:"session_title"`
	MemberName   string `db:"member_name" json:"member_name"`
}

type BookSessionRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required" example:"2024-06-01"`
	TimeSlot      string `json:"time_slot" binding:"required,max=32" example:"10:00-11:00"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required" example:"completed"`
}

type BookResult struct {
	Booking *Booking         `json:"booking"`
	Payment *payment.Payment `json:"payment"`
}

// ParseScheduledDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseScheduledDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// NormalizeTimeSlot trims the label. Slots are opaque: two bookings conflict only when
// their labels are equal, never because the times they describe overlap.
func NormalizeTimeSlot(s string) (string, error) {
	slot := strings.TrimSpace(s)
	if slot == "" {
		return "", ErrEmptyTimeSlot
	}
	return slot, nil
}
