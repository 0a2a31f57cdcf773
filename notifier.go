package onboarding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// WelcomeEmailSubject is the fixed subject line of the onboarding email.
const WelcomeEmailSubject = "Welcome to Your Course"

const welcomeBodyTemplate = "Welcome %s!\n\nYou have been enrolled in the %s course.\n\nBest regards,\nYour Institution"

// Notifier renders and dispatches the welcome email for a freshly created
// account. Delivery failure is reported, never escalated: the account was
// already created and is not rolled back.
type Notifier struct {
	repo   RepositoryManager
	mailer Mailer
	hooks  *Hooks
	logger Logger
}

func NewNotifier(repo RepositoryManager, mailer Mailer, hooks *Hooks) *Notifier {
	return &Notifier{
		repo:   repo,
		mailer: mailer,
		hooks:  hooks,
		logger: defLogger{},
	}
}

func (n *Notifier) WithLogger(logger Logger) *Notifier {
	n.logger = logger
	return n
}

// Notify sends the welcome email to the account's stored address and
// reports whether the transport accepted the message.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, payload Payload) bool {
	user, err := n.repo.Users().GetByID(ctx, userID.String())
	if err != nil {
		n.logger.Error("welcome email skipped, account lookup failed", "user_id", userID.String(), "error", err)
		return false
	}

	body := fmt.Sprintf(
		welcomeBodyTemplate,
		payload.Get(FieldStudentName),
		payload.Get(FieldCourse),
	)
	body = n.hooks.applyWelcomeEmailBody(body, userID)

	if err := n.mailer.Send(ctx, user.Email, WelcomeEmailSubject, body); err != nil {
		n.logger.Error("welcome email dispatch failed", "user_id", userID.String(), "error", err)
		return false
	}

	return true
}
