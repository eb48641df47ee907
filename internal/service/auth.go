// Package service holds the business flows behind the HTTP handlers.
// Services depend on small interfaces rather than concrete repositories
// so tests can substitute fakes.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mhakbari/orderstack/internal/apperr"
	"github.com/mhakbari/orderstack/internal/config"
	"github.com/mhakbari/orderstack/internal/logger"
	"github.com/mhakbari/orderstack/internal/mail"
	"github.com/mhakbari/orderstack/internal/model"
	"github.com/mhakbari/orderstack/internal/queue"
	"github.com/mhakbari/orderstack/internal/repository"
	"github.com/mhakbari/orderstack/internal/utils"
)

// UserStore is the credential-store surface the auth flows need.
type UserStore interface {
	Create(ctx context.Context, nu model.NewUser) (model.User, error)
	GetByEmail(ctx context.Context, email string, withPassword bool) (model.User, error)
	GetByID(ctx context.Context, id uint64, withPassword bool) (model.User, error)
	UpdatePassword(ctx context.Context, id uint64, newPlaintext string) error
	SetBlocked(ctx context.Context, id uint64, blocked bool) error
}

// EmailPublisher queues non-critical mail for asynchronous delivery.
type EmailPublisher interface {
	PublishEmail(ctx context.Context, ev queue.EmailEvent) error
}

// ResetLedger enforces single use of password-reset tokens.
type ResetLedger interface {
	Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Auth orchestrates registration, login, token refresh and the
// password flows. Tokens are stateless; the only server-side
// invalidation signal is the user's password_changed_at timestamp.
type Auth struct {
	cfg       config.Config
	users     UserStore
	sender    mail.Sender
	render    *mail.Renderer
	publisher EmailPublisher
	ledger    ResetLedger // nil disables single-use enforcement
}

func NewAuth(cfg config.Config, users UserStore, sender mail.Sender, render *mail.Renderer, publisher EmailPublisher, ledger ResetLedger) *Auth {
	return &Auth{cfg: cfg, users: users, sender: sender, render: render, publisher: publisher, ledger: ledger}
}

// Register creates the account and queues a welcome email. Mail
// problems are logged and swallowed: registration must succeed even
// when the mail pipeline is down.
func (a *Auth) Register(ctx context.Context, nu model.NewUser) (model.User, error) {
	u, err := a.users.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, apperr.DuplicateEmail("email already exists")
		}
		return model.User{}, apperr.Internal(err)
	}

	if html, rerr := a.render.Welcome(u.Name); rerr != nil {
		logger.Log.Error("render welcome email failed", zap.Error(rerr))
	} else {
		ev := queue.EmailEvent{
			Kind:     "welcome",
			QueuedAt: time.Now().UTC().Format(time.RFC3339),
			Message:  mail.Message{To: u.Email, Subject: "Welcome to Our App!", HTML: html},
		}
		if perr := a.publisher.PublishEmail(ctx, ev); perr != nil {
			logger.Log.Error("queue welcome email failed",
				zap.String("email", u.Email), zap.Error(perr))
		}
	}
	return u, nil
}

// Login validates credentials and issues an access/refresh token pair.
func (a *Auth) Login(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := a.users.GetByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, apperr.NotFound("this user is not found")
		}
		return TokenPair{}, apperr.Internal(err)
	}
	if u.IsBlocked {
		return TokenPair{}, apperr.Blocked("your account has been deactivated, please contact support")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return TokenPair{}, apperr.InvalidCredentials()
	}

	access, err := utils.NewToken(a.cfg.AccessSecret, u.ID, u.Role, u.Name, u.Email, a.cfg.AccessTTL())
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	refresh, err := utils.NewToken(a.cfg.RefreshSecret, u.ID, u.Role, u.Name, u.Email, a.cfg.RefreshTTL())
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies a refresh token and mints a new access token. The
// refresh token itself is never rotated here. A token issued before the
// user's most recent password change is rejected as stale, which is how
// old sessions die without a server-side revocation list.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ParseToken(refreshToken, a.cfg.RefreshSecret)
	if err != nil {
		return "", err
	}

	u, err := a.users.GetByEmail(ctx, claims.Email, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound("this user is not found")
		}
		return "", apperr.Internal(err)
	}
	if u.IsBlocked {
		return "", apperr.Blocked("your account has been deactivated, please contact support")
	}
	if claims.IssuedAt != nil && utils.PasswordChangedAfter(u.PasswordChangedAt, claims.IssuedAt.Unix()) {
		return "", apperr.StaleToken()
	}

	access, err := utils.NewToken(a.cfg.AccessSecret, u.ID, u.Role, u.Name, u.Email, a.cfg.AccessTTL())
	if err != nil {
		return "", apperr.Internal(err)
	}
	return access, nil
}

// ChangePassword verifies the old password and persists the new one.
// Refresh tokens issued before this call become stale; already-issued
// access tokens stay valid until their natural expiry.
func (a *Auth) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	u, err := a.users.GetByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}
	if !utils.VerifyPassword(u.PasswordHash, oldPassword) {
		return apperr.InvalidCredentials()
	}
	if err := a.users.UpdatePassword(ctx, userID, newPassword); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// RequestPasswordReset mails a short-lived single-use reset link. Mail
// failure fails the flow: an undelivered reset token is useless.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := a.users.GetByEmail(ctx, email, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}

	tokenID, err := utils.RandomHex(16)
	if err != nil {
		return apperr.Internal(err)
	}
	token, err := utils.NewTokenWithID(a.cfg.AccessSecret, tokenID, u.ID, u.Role, a.cfg.ResetTTL())
	if err != nil {
		return apperr.Internal(err)
	}

	resetURL := a.cfg.FrontendURL + "/reset-password?token=" + token
	html, err := a.render.PasswordReset(u.Name, resetURL)
	if err != nil {
		return apperr.Internal(err)
	}
	msg := mail.Message{To: u.Email, Subject: "Password Reset Request", HTML: html}
	if err := a.sender.Send(ctx, msg); err != nil {
		logger.Log.Error("send password reset email failed",
			zap.String("email", u.Email), zap.Error(err))
		return apperr.Wrap(apperr.KindInternal, "failed to send reset email", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. Each
// token is accepted at most once; a second use fails even inside the
// expiry window.
func (a *Auth) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := utils.ParseToken(token, a.cfg.AccessSecret)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return apperr.TokenInvalid("not a password reset token")
	}

	if a.ledger != nil {
		ttl := time.Minute
		if claims.ExpiresAt != nil {
			ttl = time.Until(claims.ExpiresAt.Time)
		}
		first, err := a.ledger.Consume(ctx, claims.ID, ttl)
		if err != nil {
			return apperr.Internal(err)
		}
		if !first {
			return apperr.TokenInvalid("reset token already used")
		}
	} else {
		logger.Log.Warn("reset ledger unavailable, single-use enforcement skipped")
	}

	if err := a.users.UpdatePassword(ctx, claims.UserID, newPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}
	return nil
}
