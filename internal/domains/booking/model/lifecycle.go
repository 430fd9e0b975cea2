package model

import (
	"fmt"
	"time"

	"nyumbani/shared/constant"
	"nyumbani/shared/failure"
	"nyumbani/shared/session"
)

// Transition carries the inputs of a status change: the target status plus
// the fields particular transitions require.
type Transition struct {
	Status        string
	AdminResponse string
	ScheduledDate string
}

// ValidateTransition checks a status change against the lifecycle rules and
// the actor's role. It returns a failure error describing the first rule
// violated, or nil when the transition may proceed.
//
// The rules:
//   - pending -> approved: assigned admin, scheduled_date required
//   - pending -> declined: assigned admin, admin_response required
//   - approved -> completed: assigned admin, only after scheduled_date passed
//   - any non-terminal -> cancelled: requesting tenant or assigned admin
//   - terminal states admit no transition
func (b *BookingRequest) ValidateTransition(trans Transition, sess session.Session, now time.Time) error {
	if !IsValidStatus(trans.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("unknown status %q", trans.Status)) //nolint:wrapcheck
	}

	if IsTerminal(b.Status) {
		return failure.UnprocessableEntity(fmt.Sprintf("booking request is already %s", b.Status)) //nolint:wrapcheck
	}

	switch trans.Status {
	case StatusApproved:
		if b.Status != StatusPending {
			return failure.UnprocessableEntity("only pending requests can be approved") //nolint:wrapcheck
		}

		if err := b.requireAssignedAdmin(sess); err != nil {
			return err
		}

		if trans.ScheduledDate == "" {
			return failure.BadRequestFromString("scheduled_date is required to approve a request") //nolint:wrapcheck
		}

		if _, err := time.Parse(constant.DateOnlyFormat, trans.ScheduledDate); err != nil {
			return failure.BadRequestFromString("scheduled_date must be a valid date (YYYY-MM-DD)") //nolint:wrapcheck
		}

	case StatusDeclined:
		if b.Status != StatusPending {
			return failure.UnprocessableEntity("only pending requests can be declined") //nolint:wrapcheck
		}

		if err := b.requireAssignedAdmin(sess); err != nil {
			return err
		}

		if trans.AdminResponse == "" {
			return failure.BadRequestFromString("admin_response is required to decline a request") //nolint:wrapcheck
		}

	case StatusCompleted:
		if b.Status != StatusApproved {
			return failure.UnprocessableEntity("only approved requests can be completed") //nolint:wrapcheck
		}

		if err := b.requireAssignedAdmin(sess); err != nil {
			return err
		}

		if !b.scheduledDatePassed(now) {
			return failure.UnprocessableEntity("viewing has not happened yet") //nolint:wrapcheck
		}

	case StatusCancelled:
		if b.TenantID != sess.UserID && b.AdminID != sess.UserID && !sess.IsSuperAdmin() {
			return failure.Forbidden("only the tenant or the assigned admin can cancel") //nolint:wrapcheck
		}

	case StatusPending:
		return failure.UnprocessableEntity("requests cannot return to pending") //nolint:wrapcheck
	}

	return nil
}

func (b *BookingRequest) requireAssignedAdmin(sess session.Session) error {
	if sess.IsSuperAdmin() {
		return nil
	}

	if !sess.IsAdmin() || b.AdminID != sess.UserID {
		return failure.Forbidden("only the assigned admin can do this") //nolint:wrapcheck
	}

	return nil
}

func (b *BookingRequest) scheduledDatePassed(now time.Time) bool {
	if !b.ScheduledDate.Valid {
		return false
	}

	scheduled, err := time.Parse(constant.DateOnlyFormat, b.ScheduledDate.String)
	if err != nil {
		return false
	}

	return now.After(scheduled.Add(24 * time.Hour))
}

// ValidateFeedback checks that feedback may be recorded: completed requests
// only, by the requesting tenant, with a 1-5 rating.
func (b *BookingRequest) ValidateFeedback(rating int, sess session.Session) error {
	if b.Status != StatusCompleted {
		return failure.UnprocessableEntity("feedback is only accepted on completed requests") //nolint:wrapcheck
	}

	if b.TenantID != sess.UserID {
		return failure.Forbidden("only the requesting tenant can leave feedback") //nolint:wrapcheck
	}

	if rating < 1 || rating > 5 {
		return failure.BadRequestFromString("rating must be between 1 and 5") //nolint:wrapcheck
	}

	return nil
}
