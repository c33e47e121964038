package email

import (
	"context"
	"fmt"
	"time"
)

const dateLayout = "Mon, Jan 2, 2006"

func (s *Service) SendTrainerInvitation(ctx context.Context, to, name, gymName, link string, expiresAt time.Time) error {
	subject := "You're invited to train at " + gymName
	body := fmt.Sprintf(`Hi %s,

%s would like you to join their team as a trainer.

Accept the invitation here:
%s

The link is valid until %s and can be used once.
If you don't want to become a trainer, just ignore this email.

- FitMe Team`, name, gymName, link, expiresAt.Format("Jan 2, 2006 at 3:04 PM MST"))

	return s.enqueue(ctx, TypeTrainerInvitation, to, name, subject, body)
}

func (s *Service) SendMembershipConfirmation(ctx context.Context, to, name, planTitle, gymName string, endDate time.Time) error {
	subject := "Membership Confirmed - " + gymName
	body := fmt.Sprintf(`Hi %s,

Your %s membership at %s is active.

Valid until: %s

See you at the gym!

- FitMe Team`, name, planTitle, gymName, endDate.Format(dateLayout))

	return s.enqueue(ctx, TypeMembershipConfirmation, to, name, subject, body)
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, sessionTitle string, scheduledDate time.Time, timeSlot string) error {
	subject := "Booking Confirmed - " + sessionTitle
	body := fmt.Sprintf(`Hi %s,

Your session is booked!

Session: %s
Date: %s
Time: %s

See you at the gym!

- FitMe Team`, name, sessionTitle, scheduledDate.Format(dateLayout), timeSlot)

	return s.enqueue(ctx, TypeBookingConfirmation, to, name, subject, body)
}

func (s *Service) SendBookingCancellation(ctx context.Context, to, name, sessionTitle string, scheduledDate time.Time, timeSlot string) error {
	subject := "Booking Cancelled - " + sessionTitle
	body := fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Session: %s
Date: %s
Time: %s

- FitMe Team`, name, sessionTitle, scheduledDate.Format(dateLayout), timeSlot)

	return s.enqueue(ctx, TypeBookingCancellation, to, name, subject, body)
}
