package onboarding

import "crypto/subtle"

// BasicAuthenticator verifies HTTP basic-auth credentials against the two
// secrets configured at process startup. Comparison is constant time so a
// caller cannot learn prefix matches from response latency.
type BasicAuthenticator struct {
	username []byte
	password []byte
	logger   Logger
}

// NewBasicAuthenticator returns an authenticator bound to the configured
// credentials. Empty secrets never authenticate anything.
func NewBasicAuthenticator(username, password string) *BasicAuthenticator {
	return &BasicAuthenticator{
		username: []byte(username),
		password: []byte(password),
		logger:   defLogger{},
	}
}

func (a *BasicAuthenticator) WithLogger(logger Logger) *BasicAuthenticator {
	a.logger = logger
	return a
}

// Authenticate checks the supplied pair against the configured secrets.
// Absent header values arrive as empty strings, never as a special case.
func (a *BasicAuthenticator) Authenticate(username, password string) bool {
	if len(a.username) == 0 || len(a.password) == 0 {
		a.logger.Error("basic auth rejected: credentials not configured")
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), a.password) == 1

	return userOK && passOK
}
