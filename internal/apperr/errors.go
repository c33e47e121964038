package apperr

import "errors"

// Engine error kinds. Services wrap these with context; callers match with errors.Is.
var (
	ErrNotFound                  = errors.New("not found")
	ErrInactiveEntity            = errors.New("entity is inactive")
	ErrUnauthorized              = errors.New("not allowed to act on this resource")
	ErrDuplicateActiveMembership = errors.New("user already has an active membership at this gym")
	ErrMembershipRequired        = errors.New("an active membership at this gym is required")
	ErrSlotUnavailable           = errors.New("time slot is already booked for this trainer")
	ErrDuplicateInvitation       = errors.New("a pending invitation already exists for this member")
	ErrInvalidCandidate          = errors.New("user is not eligible for promotion")
	ErrInvalidOrExpiredToken     = errors.New("invitation token is invalid or expired")
	ErrInvalidTransition         = errors.New("status transition not allowed")
	ErrValidation                = errors.New("validation failed")
)

var (
	ErrInactivePlan    = Wrap(ErrInactiveEntity, "membership plan is inactive")
	ErrInactiveSession = Wrap(ErrInactiveEntity, "training session is inactive")
)

type wrapped struct {
	kind error
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }

// Wrap returns an error with its own message that still matches kind.
func Wrap(kind error, msg string) error {
	return &wrapped{kind: kind, msg: msg}
}

// Kind reports the engine error kind err belongs to, or nil for infrastructure errors.
func Kind(err error) error {
	for _, k := range []error{
		ErrNotFound,
		ErrInactiveEntity,
		ErrUnauthorized,
		ErrDuplicateActiveMembership,
		ErrMembershipRequired,
		ErrSlotUnavailable,
		ErrDuplicateInvitation,
		ErrInvalidCandidate,
		ErrInvalidOrExpiredToken,
		ErrInvalidTransition,
		ErrValidation,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
