package model_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nyumbani/internal/domains/booking/model"
	"nyumbani/shared/constant"
	"nyumbani/shared/session"
)

var (
	tenantSess = session.Session{UserID: "tenant-1", Role: constant.RoleTenant}
	adminSess  = session.Session{UserID: "admin-1", Role: constant.RoleAdmin}
	superSess  = session.Session{UserID: "super-1", Role: constant.RoleSuperAdmin}
	otherAdmin = session.Session{UserID: "admin-2", Role: constant.RoleAdmin}
)

func booking(status string) *model.BookingRequest {
	return &model.BookingRequest{
		ID:         "booking-1",
		PropertyID: "property-1",
		TenantID:   "tenant-1",
		AdminID:    "admin-1",
		Status:     status,
	}
}

func TestValidateTransition_Approve(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *model.BookingRequest
		trans   model.Transition
		sess    session.Session
		wantErr bool
	}{
		{
			name:    "assigned admin approves pending with a schedule",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusApproved, ScheduledDate: "2026-09-01"},
			sess:    adminSess,
			wantErr: false,
		},
		{
			name:    "superadmin may approve any request",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusApproved, ScheduledDate: "2026-09-01"},
			sess:    superSess,
			wantErr: false,
		},
		{
			name:    "unassigned admin cannot approve",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusApproved, ScheduledDate: "2026-09-01"},
			sess:    otherAdmin,
			wantErr: true,
		},
		{
			name:    "tenant cannot approve",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusApproved, ScheduledDate: "2026-09-01"},
			sess:    tenantSess,
			wantErr: true,
		},
		{
			name:    "approval requires a scheduled date",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusApproved},
			sess:    adminSess,
			wantErr: true,
		},
		{
			name:    "scheduled date must parse",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusApproved, ScheduledDate: "next tuesday"},
			sess:    adminSess,
			wantErr: true,
		},
		{
			name:    "approved requests cannot be approved again",
			booking: booking(model.StatusApproved),
			trans:   model.Transition{Status: model.StatusApproved, ScheduledDate: "2026-09-01"},
			sess:    adminSess,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.ValidateTransition(tt.trans, tt.sess, now)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransition_Decline(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *model.BookingRequest
		trans   model.Transition
		sess    session.Session
		wantErr bool
	}{
		{
			name:    "assigned admin declines with a reason",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusDeclined, AdminResponse: "Property no longer available"},
			sess:    adminSess,
			wantErr: false,
		},
		{
			name:    "declining requires a reason",
			booking: booking(model.StatusPending),
			trans:   model.Transition{Status: model.StatusDeclined},
			sess:    adminSess,
			wantErr: true,
		},
		{
			name:    "approved requests cannot be declined",
			booking: booking(model.StatusApproved),
			trans:   model.Transition{Status: model.StatusDeclined, AdminResponse: "too late"},
			sess:    adminSess,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.ValidateTransition(tt.trans, tt.sess, now)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransition_Complete(t *testing.T) {
	scheduled := "2026-08-20"

	approved := func() *model.BookingRequest {
		b := booking(model.StatusApproved)
		b.ScheduledDate = sql.NullString{String: scheduled, Valid: true}

		return b
	}

	tests := []struct {
		name    string
		booking *model.BookingRequest
		now     time.Time
		sess    session.Session
		wantErr bool
	}{
		{
			name:    "completable once the viewing day is over",
			booking: approved(),
			now:     time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC),
			sess:    adminSess,
			wantErr: false,
		},
		{
			name:    "not completable on the viewing day itself",
			booking: approved(),
			now:     time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC),
			sess:    adminSess,
			wantErr: true,
		},
		{
			name:    "not completable before the viewing",
			booking: approved(),
			now:     time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
			sess:    adminSess,
			wantErr: true,
		},
		{
			name:    "pending requests cannot be completed",
			booking: booking(model.StatusPending),
			now:     time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC),
			sess:    adminSess,
			wantErr: true,
		},
		{
			name:    "approved without a schedule cannot be completed",
			booking: booking(model.StatusApproved),
			now:     time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC),
			sess:    adminSess,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.booking.ValidateTransition(model.Transition{Status: model.StatusCompleted}, tt.sess, tt.now)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransition_Cancel(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		sess    session.Session
		wantErr bool
	}{
		{name: "tenant cancels their own pending request", status: model.StatusPending, sess: tenantSess, wantErr: false},
		{name: "tenant cancels an approved request", status: model.StatusApproved, sess: tenantSess, wantErr: false},
		{name: "assigned admin cancels", status: model.StatusPending, sess: adminSess, wantErr: false},
		{name: "superadmin cancels", status: model.StatusPending, sess: superSess, wantErr: false},
		{name: "unrelated admin cannot cancel", status: model.StatusPending, sess: otherAdmin, wantErr: true},
		{name: "unrelated tenant cannot cancel", status: model.StatusPending, sess: session.Session{UserID: "tenant-9", Role: constant.RoleTenant}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking(tt.status).ValidateTransition(model.Transition{Status: model.StatusCancelled}, tt.sess, now)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransition_TerminalStatesAdmitNoExit(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	for _, terminal := range []string{model.StatusDeclined, model.StatusCompleted, model.StatusCancelled} {
		for _, target := range []string{model.StatusApproved, model.StatusDeclined, model.StatusCompleted, model.StatusCancelled} {
			err := booking(terminal).ValidateTransition(model.Transition{
				Status:        target,
				AdminResponse: "reason",
				ScheduledDate: "2026-09-01",
			}, superSess, now)

			assert.Error(t, err, "%s -> %s must be rejected", terminal, target)
		}
	}
}

func TestValidateTransition_RejectsUnknownAndPendingTargets(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	assert.Error(t, booking(model.StatusPending).ValidateTransition(model.Transition{Status: "archived"}, superSess, now))
	assert.Error(t, booking(model.StatusApproved).ValidateTransition(model.Transition{Status: model.StatusPending}, superSess, now))
}

func TestValidateFeedback(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		rating  int
		sess    session.Session
		wantErr bool
	}{
		{name: "tenant rates a completed viewing", status: model.StatusCompleted, rating: 5, sess: tenantSess, wantErr: false},
		{name: "lowest rating accepted", status: model.StatusCompleted, rating: 1, sess: tenantSess, wantErr: false},
		{name: "rating zero rejected", status: model.StatusCompleted, rating: 0, sess: tenantSess, wantErr: true},
		{name: "rating above five rejected", status: model.StatusCompleted, rating: 6, sess: tenantSess, wantErr: true},
		{name: "feedback on pending rejected", status: model.StatusPending, rating: 5, sess: tenantSess, wantErr: true},
		{name: "feedback on approved rejected", status: model.StatusApproved, rating: 5, sess: tenantSess, wantErr: true},
		{name: "admin cannot leave feedback", status: model.StatusCompleted, rating: 5, sess: adminSess, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking(tt.status).ValidateFeedback(tt.rating, tt.sess)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, model.IsTerminal(model.StatusPending))
	assert.False(t, model.IsTerminal(model.StatusApproved))
	assert.True(t, model.IsTerminal(model.StatusDeclined))
	assert.True(t, model.IsTerminal(model.StatusCompleted))
	assert.True(t, model.IsTerminal(model.StatusCancelled))
}
