package onboarding

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Rule names understood by the validator.
const (
	RuleRequired = "required"
	RuleEmail    = "email"
)

// FieldRules binds a payload field to an ordered list of rule names.
type FieldRules struct {
	Field string
	Rules []string
}

// RuleSet is the ordered validation contract for a payload. Order matters:
// error messages surface in field declaration order, then rule order within
// a field, and that order is part of the response contract.
type RuleSet []FieldRules

// DefaultRuleSet returns the enrollment contract: student_name, email, and
// course are required, and email must parse as an email address.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		{Field: FieldStudentName, Rules: []string{RuleRequired}},
		{Field: FieldEmail, Rules: []string{RuleRequired, RuleEmail}},
		{Field: FieldCourse, Rules: []string{RuleRequired}},
	}
}

// Validate applies every rule to the payload and collects one message per
// violation. An empty result means the payload is accepted. Unknown rule
// names are ignored so a filtered rule set cannot break validation.
func Validate(payload Payload, rules RuleSet) []string {
	var errs []string

	for _, field := range rules {
		value := payload.Get(field.Field)

		for _, rule := range field.Rules {
			switch rule {
			case RuleRequired:
				// whitespace-only counts as empty
				if err := validation.Validate(strings.TrimSpace(value), validation.Required); err != nil {
					errs = append(errs, fmt.Sprintf("%s is required", field.Field))
				}
			case RuleEmail:
				// format rules skip blank values, the contract does not
				if strings.TrimSpace(value) == "" || validation.Validate(value, is.Email) != nil {
					errs = append(errs, fmt.Sprintf("%s must be a valid email", field.Field))
				}
			}
		}
	}

	return errs
}
