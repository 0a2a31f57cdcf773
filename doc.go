// Package onboarding implements the student onboarding pipeline: an HTTP
// basic-auth gate, declarative payload validation, account provisioning
// against the user directory, and welcome email delivery.
//
// Pipeline:
//   - BasicAuthenticator verifies the request against two secrets that are
//     configured once at startup and never read from ambient globals.
//   - Validate applies an ordered RuleSet to the request payload and collects
//     every violation rather than failing fast.
//   - Provisioner looks an account up by email and creates it with the
//     student role when absent. The store's unique email constraint is the
//     final arbiter when two requests race on the same address.
//   - Notifier renders the welcome email and hands it to the configured
//     Mailer. Delivery failure never fails the request; it is reported as
//     the email_status field of the response.
//
// Extension points:
//   - Hooks exposes typed pre/post actions around each stage and value
//     filters for the rule set, the creation record, and the email body.
//     Actions run best-effort (panics are recovered and logged) so external
//     observers can never abort the pipeline.
package onboarding
