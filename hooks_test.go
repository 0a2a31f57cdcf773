package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHooksActionsRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	hooks := NewHooks().
		OnPreValidate(func(ctx context.Context, payload Payload) {
			calls = append(calls, "first:"+payload.Get(FieldEmail))
		}).
		OnPreValidate(func(ctx context.Context, payload Payload) {
			calls = append(calls, "second")
		})

	hooks.emitPreValidate(context.Background(), Payload{FieldEmail: "jane@example.com"})

	assert.Equal(t, []string{"first:jane@example.com", "second"}, calls)
}

func TestHooksActionPanicDoesNotAbortRemainingObservers(t *testing.T) {
	t.Parallel()

	var reached bool
	userID := uuid.New()

	hooks := NewHooks().WithLogger(discardLogger{}).
		OnPostCreate(func(ctx context.Context, id uuid.UUID, payload Payload) {
			panic("observer exploded")
		}).
		OnPostCreate(func(ctx context.Context, id uuid.UUID, payload Payload) {
			reached = id == userID
		})

	hooks.emitPostCreate(context.Background(), userID, Payload{})

	assert.True(t, reached)
}

func TestHooksFiltersChain(t *testing.T) {
	t.Parallel()

	hooks := NewHooks().
		FilterWelcomeEmailBody(func(body string, userID uuid.UUID) string {
			return body + " one"
		}).
		FilterWelcomeEmailBody(func(body string, userID uuid.UUID) string {
			return body + " two"
		})

	got := hooks.applyWelcomeEmailBody("base", uuid.New())
	assert.Equal(t, "base one two", got)
}

func TestHooksFilterPanicKeepsPreviousValue(t *testing.T) {
	t.Parallel()

	hooks := NewHooks().WithLogger(discardLogger{}).
		FilterValidationRules(func(rules RuleSet) RuleSet {
			panic("filter exploded")
		}).
		FilterValidationRules(func(rules RuleSet) RuleSet {
			return append(rules, FieldRules{Field: "cohort", Rules: []string{RuleRequired}})
		})

	rules := hooks.applyValidationRules(DefaultRuleSet())

	assert.Len(t, rules, len(DefaultRuleSet())+1)
	assert.Equal(t, "cohort", rules[len(rules)-1].Field)
}

func TestHooksRecordFilterNilResultKeepsRecord(t *testing.T) {
	t.Parallel()

	hooks := NewHooks().
		FilterStudentRecord(func(record *User) *User {
			return nil
		}).
		FilterStudentRecord(func(record *User) *User {
			record.AddMetadata("source", "api")
			return record
		})

	record := hooks.applyStudentRecord(&User{Email: "jane@example.com"})

	assert.NotNil(t, record)
	assert.Equal(t, "api", record.Metadata["source"])
}

func TestNilHooksAreSafe(t *testing.T) {
	t.Parallel()

	var hooks *Hooks

	hooks.emitPreValidate(context.Background(), Payload{})
	hooks.emitPostSendWelcome(context.Background(), uuid.New(), true)

	rules := hooks.applyValidationRules(DefaultRuleSet())
	assert.Equal(t, DefaultRuleSet(), rules)

	assert.Equal(t, "body", hooks.applyWelcomeEmailBody("body", uuid.New()))
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}
