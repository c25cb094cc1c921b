package authflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/archiveshq/storefront/internal/api"
	"github.com/archiveshq/storefront/internal/session"
	"github.com/archiveshq/storefront/pkg/enums"
	"github.com/archiveshq/storefront/pkg/logger"
	"github.com/archiveshq/storefront/pkg/validators"
)

// Client is the slice of the auth backend the controller needs.
type Client interface {
	SignIn(ctx context.Context, email, password string) (api.AuthResult, error)
	SignUp(ctx context.Context, username, email, phone, password string) (api.AuthResult, error)
	VerifyOTP(ctx context.Context, email, otp string) (api.AuthResult, error)
	ResendOTP(ctx context.Context, email string) (api.AuthResult, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// Result is the outcome of a flow step. Message is only meaningful when OK
// is false, except for ResendOTP which may carry a message either way.
type Result struct {
	OK      bool
	Message string
}

// ControllerParams carries the controller's dependencies.
type ControllerParams struct {
	Client   Client
	Sessions *session.Store
	Logger   *logger.Logger

	// VerboseErrors surfaces backend failure details in messages. Leave it
	// off in production so internals never reach the user.
	VerboseErrors bool
}

// Controller drives the sign-in, sign-up and verification flows and owns
// the signed-in user state. Safe for concurrent use.
type Controller struct {
	client   Client
	sessions *session.Store
	logger   *logger.Logger
	verbose  bool

	mu                       sync.Mutex
	user                     *session.User
	authModalOpen            bool
	authMode                 enums.AuthMode
	otpModalOpen             bool
	pendingVerificationEmail string
}

// NewController validates the dependencies and restores any persisted
// session so a returning user starts signed in.
func NewController(ctx context.Context, params ControllerParams) (*Controller, error) {
	if params.Client == nil {
		return nil, errors.New("auth client is required")
	}
	if params.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}

	c := &Controller{
		client:   params.Client,
		sessions: params.Sessions,
		logger:   params.Logger,
		verbose:  params.VerboseErrors,
		authMode: enums.AuthModeLogin,
		user:     params.Sessions.Load(ctx),
	}
	if c.user != nil {
		params.Logger.Info(params.Logger.WithEmail(ctx, c.user.Email), "restored persisted session")
	}
	return c, nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login exchanges credentials for a session. On success the user state is
// populated, persisted, and the auth modal is closed.
func (c *Controller) Login(ctx context.Context, email, password string) Result {
	if err := validators.Struct(loginRequest{Email: email, Password: password}); err != nil {
		return Result{Message: "Email and password are required"}
	}

	result, err := c.client.SignIn(ctx, email, password)
	if err != nil {
		return Result{Message: c.networkMessage(err)}
	}
	if !result.OK {
		if c.verbose {
			return Result{Message: defaultString(result.Detail, "Server error")}
		}
		return Result{Message: defaultString(result.Message, "Invalid credentials")}
	}

	c.signIn(ctx, email, result.Account)
	return Result{OK: true}
}

// Signup registers an account and, on success, moves the flow into
// one-time-code verification.
func (c *Controller) Signup(ctx context.Context, username, email, phone, password string) Result {
	if err := validators.Struct(signupRequest{
		Username: username,
		Email:    email,
		Phone:    phone,
		Password: password,
	}); err != nil {
		messages := validators.Messages(err)
		if messages["password"] != "" && strings.HasPrefix(messages["password"], "must be at least") && len(messages) == 1 {
			return Result{Message: "Password must be at least 6 characters"}
		}
		return Result{Message: "All fields are required"}
	}

	result, err := c.client.SignUp(ctx, username, email, phone, password)
	if err != nil {
		return Result{Message: "Network error"}
	}
	if !result.OK {
		return Result{Message: defaultString(result.Message, "Signup failed")}
	}

	c.mu.Lock()
	c.authModalOpen = false
	c.pendingVerificationEmail = email
	c.otpModalOpen = true
	c.mu.Unlock()
	return Result{OK: true}
}

// VerifyOTP confirms a pending account. On success the user is signed in
// and the verification state is cleared.
func (c *Controller) VerifyOTP(ctx context.Context, email, otp string) Result {
	result, err := c.client.VerifyOTP(ctx, email, otp)
	if err != nil {
		return Result{Message: "Network error"}
	}
	if !result.OK {
		return Result{Message: defaultString(result.Message, "Invalid OTP")}
	}

	c.signIn(ctx, email, result.Account)
	c.mu.Lock()
	c.otpModalOpen = false
	c.pendingVerificationEmail = ""
	c.mu.Unlock()
	return Result{OK: true}
}

// ResendOTP asks the backend for a fresh one-time code.
func (c *Controller) ResendOTP(ctx context.Context, email string) Result {
	result, err := c.client.ResendOTP(ctx, email)
	if err != nil {
		return Result{Message: "Network error"}
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return Result{Message: "Failed"}
	}
	return Result{OK: result.OK, Message: result.Message}
}

// CheckUsername reports username availability, or nil when the backend
// could not be reached.
func (c *Controller) CheckUsername(ctx context.Context, username string) *bool {
	available, err := c.client.CheckUsername(ctx, username)
	if err != nil {
		c.logger.Warn(ctx, "username availability check failed")
		return nil
	}
	return &available
}

// Logout persists the user's saved items under their own key and clears
// the session.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	user := c.user
	c.user = nil
	c.mu.Unlock()

	if user == nil {
		return
	}
	c.sessions.SaveItemsFor(ctx, user.Email, user.SavedItems)
	c.sessions.Clear(ctx)
}

// User returns a copy of the signed-in user, or nil.
func (c *Controller) User() *session.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	copied := *c.user
	copied.SavedItems = append([]string(nil), c.user.SavedItems...)
	return &copied
}

// IsLoggedIn reports whether a user is signed in.
func (c *Controller) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

// ToggleSavedItem adds or removes a product from the signed-in user's
// saved items. A no-op when signed out.
func (c *Controller) ToggleSavedItem(ctx context.Context, productID string) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return
	}

	items := c.user.SavedItems
	found := -1
	for i, id := range items {
		if id == productID {
			found = i
			break
		}
	}
	if found >= 0 {
		c.user.SavedItems = append(items[:found], items[found+1:]...)
	} else {
		c.user.SavedItems = append(items, productID)
	}
	snapshot := *c.user
	snapshot.SavedItems = append([]string(nil), c.user.SavedItems...)
	c.mu.Unlock()

	c.sessions.Save(ctx, snapshot)
}

// IsSaved reports whether the signed-in user saved the product.
func (c *Controller) IsSaved(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return false
	}
	for _, id := range c.user.SavedItems {
		if id == productID {
			return true
		}
	}
	return false
}

// AuthModalOpen reports the auth modal visibility.
func (c *Controller) AuthModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authModalOpen
}

// SetAuthModalOpen shows or hides the auth modal.
func (c *Controller) SetAuthModalOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authModalOpen = open
}

// AuthMode reports which form the auth modal shows.
func (c *Controller) AuthMode() enums.AuthMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authMode
}

// SetAuthMode switches the auth modal between login and signup.
func (c *Controller) SetAuthMode(mode enums.AuthMode) {
	if !mode.IsValid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authMode = mode
}

// OTPModalOpen reports the verification modal visibility.
func (c *Controller) OTPModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.otpModalOpen
}

// SetOTPModalOpen shows or hides the verification modal.
func (c *Controller) SetOTPModalOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.otpModalOpen = open
}

// PendingVerificationEmail returns the email awaiting verification, or "".
func (c *Controller) PendingVerificationEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingVerificationEmail
}

// SetPendingVerificationEmail overrides the email awaiting verification.
func (c *Controller) SetPendingVerificationEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingVerificationEmail = email
}

// signIn builds the user state from the backend account, restoring any
// saved items previously stored for the email.
func (c *Controller) signIn(ctx context.Context, email string, account *api.Account) {
	resolvedEmail := email
	name := strings.Split(email, "@")[0]
	if account != nil {
		if account.Email != "" {
			resolvedEmail = account.Email
		}
		if account.Username != "" {
			name = account.Username
		}
	}

	user := session.User{
		Email:      resolvedEmail,
		Name:       name,
		SavedItems: c.sessions.SavedItemsFor(ctx, email),
	}

	c.mu.Lock()
	c.user = &user
	c.authModalOpen = false
	c.mu.Unlock()

	c.sessions.Save(ctx, user)
	c.logger.Info(c.logger.WithEmail(ctx, resolvedEmail), "user signed in")
}

func (c *Controller) networkMessage(err error) string {
	if c.verbose && err != nil {
		return "Network error: " + err.Error()
	}
	return "Network error"
}

func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
