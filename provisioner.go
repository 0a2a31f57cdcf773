package onboarding

import (
	"context"
	"strings"
	"time"
	"unicode"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const provisionTimeout = time.Second * 10

// Provisioner creates student accounts in the user directory. The decision
// to create or reject is made exactly once per request: an account that
// already owns the email rejects the request, and a duplicate that slips
// past the lookup is caught by the store's unique constraint.
type Provisioner struct {
	repo             RepositoryManager
	hooks            *Hooks
	logger           Logger
	deterministicIDs bool
}

func NewProvisioner(repo RepositoryManager, hooks *Hooks) *Provisioner {
	return &Provisioner{
		repo:   repo,
		hooks:  hooks,
		logger: defLogger{},
	}
}

func (p *Provisioner) WithLogger(logger Logger) *Provisioner {
	p.logger = logger
	return p
}

// WithDeterministicIDs derives account ids from the email address so the
// same student always maps to the same id across environments.
func (p *Provisioner) WithDeterministicIDs() *Provisioner {
	p.deterministicIDs = true
	return p
}

// Provision looks up the email and creates the account when absent,
// returning the new account id. It never upserts: a second call with the
// same email always fails with ErrUserExists.
func (p *Provisioner) Provision(ctx context.Context, payload Payload) (uuid.UUID, error) {
	select {
	case <-ctx.Done():
		return uuid.Nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during student provisioning",
		)
	default:
		return p.provision(ctx, payload)
	}
}

func (p *Provisioner) provision(ctx context.Context, payload Payload) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, provisionTimeout)
	defer cancel()

	user := &User{}

	err := p.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		email := NormalizeEmail(payload.Get(FieldEmail))

		existing, err := p.repo.Users().FindByEmail(ctx, email)
		if err != nil && !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up student by email").
				WithTextCode(TextCodeStore)
		}
		if existing != nil {
			return ErrUserExists
		}

		user.Email = email
		user.Username = usernameFromEmail(email)
		user.FirstName = SanitizeName(payload.Get(FieldStudentName))
		user.Role = RoleStudent

		if p.deterministicIDs {
			if id, err := hashid.NewUUID(email); err == nil {
				user.ID = id
			}
		}

		user = p.hooks.applyStudentRecord(user)

		if user, err = p.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create student user").
				WithTextCode(TextCodeStore)
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return uuid.Nil, richErr
		}
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "student provisioning transaction failed").
			WithTextCode(TextCodeStore)
	}

	return user.ID, nil
}

// NormalizeEmail lowercases and trims an address. The directory treats
// email uniqueness as case insensitive, so the normalized form is what gets
// stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeName strips control characters and collapses runs of whitespace
// so the display name is safe for storage.
func SanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	return strings.Join(strings.Fields(name), " ")
}

// usernameFromEmail derives a login from the address' local part.
func usernameFromEmail(email string) string {
	username := email
	if strings.Contains(email, "@") {
		username = strings.Split(email, "@")[0]
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-', r == '+':
			return r
		default:
			return -1
		}
	}, username)
}
