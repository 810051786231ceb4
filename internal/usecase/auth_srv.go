package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/dto/request"
	"wedding-marketplace/internal/dto/response"
	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/database"
	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthService interface {
	RegisterCustomer(ctx context.Context, req *request.RegisterCustomerRequest) (*response.CustomerResponse, error)
	RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) (*response.ProviderResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, tokenID string) error

	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error
	ResendVerification(ctx context.Context, req *request.AccountEmailRequest) error
	ForgotPassword(ctx context.Context, req *request.AccountEmailRequest) error
	ValidateResetToken(ctx context.Context, rawToken string) (*response.TokenStatusResponse, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo        *repository.Repository
	tx          database.Transactor
	tokens      *token.Manager
	revocations token.RevocationStore
	notifier    Notifier
	config      *utils.Config
	log         *zap.Logger
	now         func() time.Time
}

func NewAuthService(deps Dependencies) AuthService {
	return &authService{
		repo:        deps.Repo,
		tx:          deps.Tx,
		tokens:      deps.Tokens,
		revocations: deps.Revocations,
		notifier:    deps.notifier(),
		config:      deps.Config,
		log:         deps.Log.With(zap.String("service", "auth")),
		now:         deps.clock(),
	}
}

func (s *authService) verificationTTL() time.Duration {
	return time.Duration(s.config.Token.VerificationExpiryMinutes) * time.Minute
}

func (s *authService) resetTTL() time.Duration {
	return time.Duration(s.config.Token.ResetExpiryMinutes) * time.Minute
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) RegisterCustomer(ctx context.Context, req *request.RegisterCustomerRequest) (*response.CustomerResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	existing, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to process password", err)
	}

	now := s.now()
	customer := &entity.Customer{
		Base:         entity.NewBase(now),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Phone:        req.Phone,
		IsActive:     true,
	}

	var rawToken string
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Customer.WithTx(tx).Create(ctx, customer); err != nil {
			return err
		}
		raw, err := newSingleUseToken(ctx, s.repo.Token.WithTx(tx), entity.TokenKindEmailVerification,
			customer.Account(), s.verificationTTL(), now)
		rawToken = raw
		return err
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.Conflict("email already registered")
	}
	if err != nil {
		return nil, apperror.Internal("failed to create account", err)
	}

	s.notifier.SendVerification(ctx, customer.Account(), rawToken)

	s.log.Info("Customer registered", zap.String("customer_id", customer.ID.String()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *authService) RegisterProvider(ctx context.Context, req *request.RegisterProviderRequest) (*response.ProviderResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	existing, err := s.repo.Provider.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to process password", err)
	}

	now := s.now()
	phone := strings.TrimSpace(req.Phone)
	provider := &entity.Provider{
		Base:         entity.NewBase(now),
		BusinessName: strings.TrimSpace(req.BusinessName),
		OwnerName:    strings.TrimSpace(req.OwnerName),
		Email:        email,
		PasswordHash: hash,
		Phone:        &phone,
		Category:     strings.TrimSpace(req.Category),
		City:         strings.TrimSpace(req.City),
		Description:  req.Description,
		Status:       entity.ProviderStatusPending,
	}

	var rawToken string
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Provider.WithTx(tx).Create(ctx, provider); err != nil {
			return err
		}
		raw, err := newSingleUseToken(ctx, s.repo.Token.WithTx(tx), entity.TokenKindEmailVerification,
			provider.Account(), s.verificationTTL(), now)
		rawToken = raw
		return err
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.Conflict("email already registered")
	}
	if err != nil {
		return nil, apperror.Internal("failed to create account", err)
	}

	s.notifier.SendVerification(ctx, provider.Account(), rawToken)

	s.log.Info("Provider registered",
		zap.String("provider_id", provider.ID.String()),
		zap.String("category", provider.Category))

	resp := response.ProviderToResponse(provider)
	return &resp, nil
}

// findAccount returns nil when no account of role has email.
func (s *authService) findAccount(ctx context.Context, role entity.Role, email string) (*entity.Account, error) {
	switch role {
	case entity.RoleCustomer:
		c, err := s.repo.Customer.FindByEmail(ctx, email)
		if err != nil || c == nil {
			return nil, err
		}
		return c.Account(), nil
	case entity.RoleProvider:
		p, err := s.repo.Provider.FindByEmail(ctx, email)
		if err != nil || p == nil {
			return nil, err
		}
		return p.Account(), nil
	case entity.RoleAdmin:
		a, err := s.repo.Admin.FindByEmail(ctx, email)
		if err != nil || a == nil {
			return nil, err
		}
		return a.Account(), nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	role := entity.Role(req.Role)
	account, err := s.findAccount(ctx, role, normalizeEmail(req.Email))
	if err != nil {
		return nil, apperror.Internal("failed to find account", err)
	}

	if account == nil || !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("role", req.Role))
		return nil, apperror.New(apperror.KindUnauthenticated, "invalid credentials")
	}

	if !account.Active {
		s.log.Warn("Inactive account tried to login", zap.String("account_id", account.ID.String()))
		return nil, apperror.Forbidden("account is deactivated")
	}
	if !account.EmailVerified {
		return nil, apperror.Forbidden("email address is not verified")
	}

	signed, expiresAt, err := s.tokens.Issue(account.ID, string(account.Role))
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	s.log.Info("Account logged in",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)))

	return &response.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Account:   response.AccountToResponse(account),
	}, nil
}

// Logout revokes tokenID for the longest lifetime any token can have.
func (s *authService) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return apperror.New(apperror.KindUnauthenticated, "authentication required")
	}

	until := s.now().Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour)
	if err := s.revocations.Revoke(ctx, tokenID, until); err != nil {
		return apperror.Internal("failed to logout", err)
	}

	s.log.Info("Token revoked", zap.String("jti", tokenID))
	return nil
}

func (s *authService) markVerified(ctx context.Context, tx pgx.Tx, t *entity.SingleUseToken) error {
	switch t.AccountRole {
	case entity.RoleCustomer:
		return s.repo.Customer.WithTx(tx).MarkEmailVerified(ctx, t.AccountID)
	case entity.RoleProvider:
		return s.repo.Provider.WithTx(tx).MarkEmailVerified(ctx, t.AccountID)
	}
	return fmt.Errorf("verification token for unsupported role %q", t.AccountRole)
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	hash := entity.HashToken(strings.TrimSpace(req.Token))
	err := s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		consumed, err := s.repo.Token.WithTx(tx).Consume(ctx, entity.TokenKindEmailVerification, hash, s.now())
		if err != nil {
			return err
		}
		if consumed == nil {
			return apperror.InvalidOrExpiredToken()
		}
		return s.markVerified(ctx, tx, consumed)
	})
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidOrExpiredToken) {
			return err
		}
		return apperror.Internal("failed to verify email", err)
	}

	s.log.Info("Email verified")
	return nil
}

func (s *authService) ResendVerification(ctx context.Context, req *request.AccountEmailRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	account, err := s.findAccount(ctx, entity.Role(req.Role), normalizeEmail(req.Email))
	if err != nil {
		return apperror.Internal("failed to find account", err)
	}
	// unknown and already-verified accounts get the same answer
	if account == nil || account.EmailVerified {
		return nil
	}

	raw, err := newSingleUseToken(ctx, s.repo.Token, entity.TokenKindEmailVerification, account, s.verificationTTL(), s.now())
	if err != nil {
		return apperror.Internal("failed to create verification token", err)
	}

	s.notifier.SendVerification(ctx, account, raw)
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.AccountEmailRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	account, err := s.findAccount(ctx, entity.Role(req.Role), normalizeEmail(req.Email))
	if err != nil {
		return apperror.Internal("failed to find account", err)
	}
	if account == nil {
		s.log.Info("Password reset requested for unknown account", zap.String("role", req.Role))
		return nil
	}

	raw, err := newSingleUseToken(ctx, s.repo.Token, entity.TokenKindPasswordReset, account, s.resetTTL(), s.now())
	if err != nil {
		return apperror.Internal("failed to create reset token", err)
	}

	s.notifier.SendPasswordReset(ctx, account, raw)
	s.log.Info("Password reset requested", zap.String("account_id", account.ID.String()))
	return nil
}

func (s *authService) ValidateResetToken(ctx context.Context, rawToken string) (*response.TokenStatusResponse, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return &response.TokenStatusResponse{Valid: false}, nil
	}

	t, err := s.repo.Token.FindUsable(ctx, entity.TokenKindPasswordReset, entity.HashToken(rawToken), s.now())
	if err != nil {
		return nil, apperror.Internal("failed to check token", err)
	}

	return &response.TokenStatusResponse{Valid: t != nil}, nil
}

func (s *authService) updatePassword(ctx context.Context, tx pgx.Tx, t *entity.SingleUseToken, hash string) error {
	switch t.AccountRole {
	case entity.RoleCustomer:
		return s.repo.Customer.WithTx(tx).UpdatePassword(ctx, t.AccountID, hash)
	case entity.RoleProvider:
		return s.repo.Provider.WithTx(tx).UpdatePassword(ctx, t.AccountID, hash)
	}
	return fmt.Errorf("reset token for unsupported role %q", t.AccountRole)
}

// ResetPassword consumes the token and changes the password in one transaction,
// so a token can authorize at most one change.
func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal("failed to process password", err)
	}

	tokenHash := entity.HashToken(strings.TrimSpace(req.Token))
	var accountID string
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		consumed, err := s.repo.Token.WithTx(tx).Consume(ctx, entity.TokenKindPasswordReset, tokenHash, s.now())
		if err != nil {
			return err
		}
		if consumed == nil {
			return apperror.InvalidOrExpiredToken()
		}
		accountID = consumed.AccountID.String()
		return s.updatePassword(ctx, tx, consumed, hash)
	})
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidOrExpiredToken) {
			s.log.Warn("Reset attempted with unusable token")
			return err
		}
		return apperror.Internal("failed to reset password", err)
	}

	s.log.Info("Password reset", zap.String("account_id", accountID))
	return nil
}
