// Package auth implements OTP validation and the phone-verification bridge
// over an external provider.
package auth

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	"github.com/prasetyowira/kerjaku/domain/user"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
)

// Verifier is the external OTP provider. Confirm reports its outcome through
// the done callback, possibly from another goroutine.
type Verifier interface {
	SendCode(ctx context.Context, phone string) error
	Confirm(ctx context.Context, phone, code string, done func(error))
}

// IdentityProvider supplies the current user identity.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// ValidateOTP checks an OTP code: exactly 6 characters, digits only.
// It returns nil for a valid code.
func ValidateOTP(code string) apperror.AppError {
	if len(code) != constant.OTPLength {
		return apperror.NewValidation("otp", constant.ErrOTPLength, code)
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return apperror.NewValidation("otp", constant.ErrOTPDigits, code)
		}
	}
	return nil
}

// Service runs the phone-verification flow.
type Service struct {
	verifier Verifier
	users    *user.Repository
	identity IdentityProvider
	timeout  time.Duration
}

// NewService creates an auth service with the fixed provider timeout.
func NewService(verifier Verifier, users *user.Repository, identity IdentityProvider) *Service {
	return &Service{
		verifier: verifier,
		users:    users,
		identity: identity,
		timeout:  constant.OTPVerifyTimeout,
	}
}

// SendCode asks the provider to deliver an OTP to the phone number.
func (s *Service) SendCode(ctx context.Context, phone string) apperror.AppError {
	if phone == "" {
		return apperror.NewValidation("phone", constant.ErrEmptyPhone, phone)
	}
	if err := s.verifier.SendCode(ctx, phone); err != nil {
		return apperror.Classify(err, constant.CtxVerifyPhone)
	}
	return nil
}

// VerifyPhone validates the code, confirms it with the provider, and syncs
// the verified profile. It waits for the provider callback up to the
// configured timeout. A failed profile sync does not fail verification; the
// user repository logs it and keeps local state.
func (s *Service) VerifyPhone(ctx context.Context, phone, code string) apperror.AppError {
	if phone == "" {
		return apperror.NewValidation("phone", constant.ErrEmptyPhone, phone)
	}
	if ae := ValidateOTP(code); ae != nil {
		return ae
	}

	done := make(chan error, 1)
	s.verifier.Confirm(ctx, phone, code, func(err error) {
		done <- err
	})

	select {
	case err := <-done:
		if err != nil {
			return apperror.Classify(err, constant.CtxVerifyPhone)
		}
	case <-time.After(s.timeout):
		ne := apperror.NewNetwork(constant.ErrCodeNetTimeout,
			fmt.Sprintf("phone verification timed out after %s", s.timeout), nil)
		ne.IsConnection = true
		return ne
	case <-ctx.Done():
		return apperror.Classify(ctx.Err(), constant.CtxVerifyPhone)
	}

	userID, err := s.identity.CurrentUserID(ctx)
	if err != nil {
		return apperror.NewSecurity(constant.ErrCodeAuthExpired,
			constant.SecurityDomainAuthentication, "could not resolve verified identity", err)
	}

	appLogger.CtxInfo(ctx, "Phone verified", appLogger.LoggerInfo{
		ContextFunction: constant.CtxVerifyPhone,
		Data: map[string]interface{}{
			constant.DataUserID: userID,
		},
	})

	return s.users.SyncProfile(ctx, &user.User{ID: userID, Phone: phone})
}
