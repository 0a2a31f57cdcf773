package onboarding

import (
	"context"

	"github.com/google/uuid"
)

// PayloadAction observes the payload before a pipeline stage runs.
type PayloadAction func(ctx context.Context, payload Payload)

// UserAction observes a stage keyed by the account that was created.
type UserAction func(ctx context.Context, userID uuid.UUID, payload Payload)

// DeliveryAction observes the welcome email outcome.
type DeliveryAction func(ctx context.Context, userID uuid.UUID, sent bool)

// RulesFilter may replace the validation rule set before validation runs.
type RulesFilter func(rules RuleSet) RuleSet

// RecordFilter may transform the creation record before it is submitted to
// the identity store.
type RecordFilter func(record *User) *User

// BodyFilter may replace the welcome email body, keyed by account id.
type BodyFilter func(body string, userID uuid.UUID) string

// Hooks is the pipeline's typed extension point registry. Registration
// happens at startup; the registry is read-only once requests are served.
//
// Actions run synchronously in registration order and are fire-and-forget:
// a panicking callback is recovered and logged, and nothing a callback does
// can abort or reorder the pipeline. Filters chain in registration order,
// each receiving the previous value; a panicking filter keeps the value it
// was handed.
type Hooks struct {
	logger Logger

	preValidate     []PayloadAction
	preCreate       []PayloadAction
	postCreate      []UserAction
	preSendWelcome  []UserAction
	postSendWelcome []DeliveryAction

	rulesFilters  []RulesFilter
	recordFilters []RecordFilter
	bodyFilters   []BodyFilter
}

func NewHooks() *Hooks {
	return &Hooks{logger: defLogger{}}
}

func (h *Hooks) WithLogger(logger Logger) *Hooks {
	h.logger = logger
	return h
}

// OnPreValidate registers an observer that runs before validation.
func (h *Hooks) OnPreValidate(fn PayloadAction) *Hooks {
	h.preValidate = append(h.preValidate, fn)
	return h
}

// OnPreCreate registers an observer that runs before provisioning.
func (h *Hooks) OnPreCreate(fn PayloadAction) *Hooks {
	h.preCreate = append(h.preCreate, fn)
	return h
}

// OnPostCreate registers an observer that runs after an account is created.
func (h *Hooks) OnPostCreate(fn UserAction) *Hooks {
	h.postCreate = append(h.postCreate, fn)
	return h
}

// OnPreSendWelcome registers an observer that runs before the welcome email
// is dispatched.
func (h *Hooks) OnPreSendWelcome(fn UserAction) *Hooks {
	h.preSendWelcome = append(h.preSendWelcome, fn)
	return h
}

// OnPostSendWelcome registers an observer that receives the delivery outcome.
func (h *Hooks) OnPostSendWelcome(fn DeliveryAction) *Hooks {
	h.postSendWelcome = append(h.postSendWelcome, fn)
	return h
}

// FilterValidationRules registers a transform over the validation rule set.
func (h *Hooks) FilterValidationRules(fn RulesFilter) *Hooks {
	h.rulesFilters = append(h.rulesFilters, fn)
	return h
}

// FilterStudentRecord registers a transform over the creation record.
func (h *Hooks) FilterStudentRecord(fn RecordFilter) *Hooks {
	h.recordFilters = append(h.recordFilters, fn)
	return h
}

// FilterWelcomeEmailBody registers a transform over the welcome email body.
func (h *Hooks) FilterWelcomeEmailBody(fn BodyFilter) *Hooks {
	h.bodyFilters = append(h.bodyFilters, fn)
	return h
}

func (h *Hooks) emitPreValidate(ctx context.Context, payload Payload) {
	if h == nil {
		return
	}
	for _, fn := range h.preValidate {
		h.safely("pre_validate_student", func() { fn(ctx, payload) })
	}
}

func (h *Hooks) emitPreCreate(ctx context.Context, payload Payload) {
	if h == nil {
		return
	}
	for _, fn := range h.preCreate {
		h.safely("pre_create_student", func() { fn(ctx, payload) })
	}
}

func (h *Hooks) emitPostCreate(ctx context.Context, userID uuid.UUID, payload Payload) {
	if h == nil {
		return
	}
	for _, fn := range h.postCreate {
		h.safely("post_create_student", func() { fn(ctx, userID, payload) })
	}
}

func (h *Hooks) emitPreSendWelcome(ctx context.Context, userID uuid.UUID, payload Payload) {
	if h == nil {
		return
	}
	for _, fn := range h.preSendWelcome {
		h.safely("pre_send_welcome_email", func() { fn(ctx, userID, payload) })
	}
}

func (h *Hooks) emitPostSendWelcome(ctx context.Context, userID uuid.UUID, sent bool) {
	if h == nil {
		return
	}
	for _, fn := range h.postSendWelcome {
		h.safely("post_send_welcome_email", func() { fn(ctx, userID, sent) })
	}
}

func (h *Hooks) applyValidationRules(rules RuleSet) RuleSet {
	if h == nil {
		return rules
	}
	for _, fn := range h.rulesFilters {
		next := rules
		h.safely("student_validation_rules", func() { next = fn(rules) })
		if next != nil {
			rules = next
		}
	}
	return rules
}

func (h *Hooks) applyStudentRecord(record *User) *User {
	if h == nil {
		return record
	}
	for _, fn := range h.recordFilters {
		next := record
		h.safely("student_record", func() { next = fn(record) })
		if next != nil {
			record = next
		}
	}
	return record
}

func (h *Hooks) applyWelcomeEmailBody(body string, userID uuid.UUID) string {
	if h == nil {
		return body
	}
	for _, fn := range h.bodyFilters {
		next := body
		h.safely("welcome_email_body", func() { next = fn(body, userID) })
		body = next
	}
	return body
}

func (h *Hooks) safely(point string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("extension point panicked", "point", point, "recover", r)
		}
	}()
	fn()
}
