package onboarding

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/goliatone/go-print"
)

// DefaultNamespace is the route namespace when none is configured.
const DefaultNamespace = "rky"

// EnrollmentResponse is the wire shape of every pipeline outcome.
type EnrollmentResponse struct {
	Success     bool   `json:"success"`
	UserID      string `json:"user_id,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
	Message     string `json:"message"`
	EmailStatus string `json:"email_status,omitempty"`
}

// StudentsController handles the onboarding endpoint. The pipeline is
// linear: authenticate, validate, provision, notify, respond. Every failure
// is converted to a structured response at this boundary; nothing escapes
// as an unhandled fault.
type StudentsController struct {
	Debug       bool
	Logger      Logger
	Repo        RepositoryManager
	Auth        *BasicAuthenticator
	Hooks       *Hooks
	Rules       RuleSet
	Namespace   string
	Provisioner *Provisioner
	Notifier    *Notifier
}

type StudentsControllerOption func(*StudentsController) *StudentsController

func NewStudentsController(opts ...StudentsControllerOption) *StudentsController {
	c := &StudentsController{
		Logger:    defLogger{},
		Rules:     DefaultRuleSet(),
		Namespace: DefaultNamespace,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in students controller...")
	}

	if c.Auth == nil {
		panic("Missing BasicAuthenticator in students controller...")
	}

	if c.Provisioner == nil {
		c.Provisioner = NewProvisioner(c.Repo, c.Hooks).WithLogger(c.Logger)
	}

	if c.Notifier == nil {
		panic("Missing Notifier in students controller...")
	}

	return c
}

func WithRepository(repo RepositoryManager) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Repo = repo
		return c
	}
}

func WithAuthenticator(auth *BasicAuthenticator) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Auth = auth
		return c
	}
}

func WithHooks(hooks *Hooks) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Hooks = hooks
		return c
	}
}

func WithRules(rules RuleSet) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Rules = rules
		return c
	}
}

func WithNamespace(namespace string) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		if ns := strings.Trim(namespace, "/"); ns != "" {
			c.Namespace = ns
		}
		return c
	}
}

func WithNotifier(notifier *Notifier) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Notifier = notifier
		return c
	}
}

func WithProvisioner(provisioner *Provisioner) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Provisioner = provisioner
		return c
	}
}

func WithControllerLogger(logger Logger) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Logger = logger
		return c
	}
}

func WithDebug(debug bool) StudentsControllerOption {
	return func(c *StudentsController) *StudentsController {
		c.Debug = debug
		return c
	}
}

// RegisterStudentRoutes mounts POST /{namespace}/v1/students behind the
// basic-auth gate.
func RegisterStudentRoutes(app *fiber.App, controller *StudentsController) {
	group := app.Group(fmt.Sprintf("/%s/v1", controller.Namespace))
	group.Post("/students", controller.AuthGate(), controller.EnrollStudent)
}

// AuthGate returns the basic-auth middleware for the onboarding routes.
// Missing credentials reach the authenticator as empty strings and fail the
// same constant-time comparison as wrong ones.
func (a *StudentsController) AuthGate() fiber.Handler {
	realm := fmt.Sprintf("Restricted %s", a.Namespace)

	return basicauth.New(basicauth.Config{
		Realm:      realm,
		Authorizer: a.Auth.Authenticate,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, fmt.Sprintf("Basic realm=%q", realm))
			return c.Status(fiber.StatusUnauthorized).JSON(EnrollmentResponse{
				Success:   false,
				ErrorCode: "unauthorized",
				Message:   "Invalid credentials",
			})
		},
	})
}

// EnrollStudent runs the onboarding pipeline for one request.
func (a *StudentsController) EnrollStudent(c *fiber.Ctx) error {
	payload, err := a.parsePayload(c)
	if err != nil {
		a.Logger.Error("enroll student parse payload: ", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(EnrollmentResponse{
			Success:   false,
			ErrorCode: TextCodeInvalidPayload,
			Message:   ErrorMessage(err),
		})
	}

	if a.Debug {
		fmt.Println("======= STUDENT ONBOARDING ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=================================")
	}

	ctx := c.UserContext()

	a.Hooks.emitPreValidate(ctx, payload)

	rules := a.Hooks.applyValidationRules(a.Rules)
	if errs := Validate(payload, rules); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(EnrollmentResponse{
			Success:   false,
			ErrorCode: TextCodeValidation,
			Message:   strings.Join(errs, ", "),
		})
	}

	a.Hooks.emitPreCreate(ctx, payload)

	userID, err := a.Provisioner.Provision(ctx, payload)
	if err != nil {
		a.Logger.Error("enroll student provision error: ", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(EnrollmentResponse{
			Success:   false,
			ErrorCode: ErrorCode(err),
			Message:   ErrorMessage(err),
		})
	}

	a.Hooks.emitPostCreate(ctx, userID, payload)

	a.Hooks.emitPreSendWelcome(ctx, userID, payload)
	sent := a.Notifier.Notify(ctx, userID, payload)
	a.Hooks.emitPostSendWelcome(ctx, userID, sent)

	emailStatus := "sent"
	if !sent {
		emailStatus = "failed"
	}

	return c.Status(fiber.StatusCreated).JSON(EnrollmentResponse{
		Success:     true,
		UserID:      userID.String(),
		Message:     "Student successfully registered",
		EmailStatus: emailStatus,
	})
}

// parsePayload accepts JSON or form-encoded bodies. Unknown fields are kept
// so extension points can read them.
func (a *StudentsController) parsePayload(c *fiber.Ctx) (Payload, error) {
	contentType := string(c.Request().Header.ContentType())

	if strings.Contains(contentType, fiber.MIMEApplicationForm) ||
		strings.Contains(contentType, fiber.MIMEMultipartForm) {
		payload := Payload{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			payload[string(key)] = string(value)
		})
		if form, err := c.MultipartForm(); err == nil && form != nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					payload[key] = values[0]
				}
			}
		}
		return payload, nil
	}

	if len(c.Body()) == 0 {
		return Payload{}, nil
	}

	return ParseJSONPayload(c.Body())
}
