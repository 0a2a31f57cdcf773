package onboarding_test

import (
	"context"
	"database/sql"

	onboarding "github.com/rkycareers/go-onboarding"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockRepositoryManager implements onboarding.RepositoryManager. RunInTx
// invokes the transaction closure with a zero bun.Tx unless the expectation
// was configured to fail outright.
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, f)
	if err := args.Error(0); err != nil {
		return err
	}
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() onboarding.Users {
	args := m.Called()
	return args.Get(0).(onboarding.Users)
}

// MockUsers implements onboarding.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) FindByEmail(ctx context.Context, email string) (*onboarding.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*onboarding.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id string) (*onboarding.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*onboarding.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *onboarding.User) (*onboarding.User, error) {
	args := m.Called(ctx, record)
	if user, ok := args.Get(0).(*onboarding.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *onboarding.User) (*onboarding.User, error) {
	args := m.Called(ctx, tx, record)
	if user, ok := args.Get(0).(*onboarding.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMailer implements onboarding.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Error(string, ...any) {}
