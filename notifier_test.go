package onboarding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	onboarding "github.com/rkycareers/go-onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotifySendsWelcomeEmail(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	mailer := &MockMailer{}

	userID := uuid.New()

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, userID.String()).
		Return(&onboarding.User{ID: userID, Email: "jane@example.com"}, nil).Once()

	mailer.On("Send",
		mock.Anything,
		"jane@example.com",
		onboarding.WelcomeEmailSubject,
		"Welcome Jane Doe!\n\nYou have been enrolled in the Data Science course.\n\nBest regards,\nYour Institution",
	).Return(nil).Once()

	notifier := onboarding.NewNotifier(repo, mailer, nil).WithLogger(testLogger{})

	sent := notifier.Notify(ctx, userID, onboarding.Payload{
		"student_name": "Jane Doe",
		"course":       "Data Science",
	})

	assert.True(t, sent)
	mailer.AssertExpectations(t)
}

func TestNotifyReportsTransportFailure(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	mailer := &MockMailer{}

	userID := uuid.New()

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, userID.String()).
		Return(&onboarding.User{ID: userID, Email: "jane@example.com"}, nil).Once()
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("relay unavailable")).Once()

	notifier := onboarding.NewNotifier(repo, mailer, nil).WithLogger(testLogger{})

	sent := notifier.Notify(ctx, userID, onboarding.Payload{})
	assert.False(t, sent)
}

func TestNotifyReportsFailureWhenAccountLookupFails(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	mailer := &MockMailer{}

	userID := uuid.New()

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, userID.String()).
		Return(nil, repository.NewRecordNotFound()).Once()

	notifier := onboarding.NewNotifier(repo, mailer, nil).WithLogger(testLogger{})

	sent := notifier.Notify(ctx, userID, onboarding.Payload{})

	assert.False(t, sent)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyAppliesBodyFilter(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	mailer := &MockMailer{}

	userID := uuid.New()

	hooks := onboarding.NewHooks().FilterWelcomeEmailBody(func(body string, id uuid.UUID) string {
		return "override for " + id.String()
	})

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, userID.String()).
		Return(&onboarding.User{ID: userID, Email: "jane@example.com"}, nil).Once()
	mailer.On("Send", mock.Anything, "jane@example.com", onboarding.WelcomeEmailSubject, "override for "+userID.String()).
		Return(nil).Once()

	notifier := onboarding.NewNotifier(repo, mailer, hooks).WithLogger(testLogger{})

	sent := notifier.Notify(ctx, userID, onboarding.Payload{})

	assert.True(t, sent)
	mailer.AssertExpectations(t)
}
