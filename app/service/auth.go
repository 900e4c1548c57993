package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/repository"
	"github.com/huynhdieutuong/DevCamper-API/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidCreds    = errors.New("invalid credentials")
	ErrNotVerified     = errors.New("account has not been verified")
	ErrAlreadyVerified = errors.New("account is already verified")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrPasswordWrong   = errors.New("current password is incorrect")
	ErrWeakPassword    = errors.New("password does not meet policy requirements")
	ErrSameEmail       = errors.New("this is your current email")
	ErrInvalidRole     = errors.New("invalid role")
	ErrEmailDelivery   = errors.New("email could not be sent")
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetResetToken(ctx context.Context, userID uint64, tokenHash sql.NullString, expiresAt sql.NullTime) error
}

type verificationTokenRepository interface {
	Create(ctx context.Context, token *entity.VerificationToken) error
}

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*entity.User, error)
	ConfirmEmail(ctx context.Context, rawToken string) (*entity.User, error)
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*entity.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) (*entity.User, error)
	UpdateDetails(ctx context.Context, userID uint64, name, role string) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID uint64, currentPassword, newPassword string) (*entity.User, error)
	UpdateEmail(ctx context.Context, user *entity.User, newEmail string) error
}

type authService struct {
	db        *sql.DB
	userRepo  userRepository
	tokenRepo verificationTokenRepository
	tokens    *TokenService
	mail      *MailService
	cfg       *config.Config
}

func NewAuthService(
	db *sql.DB,
	userRepo userRepository,
	tokenRepo verificationTokenRepository,
	tokens *TokenService,
	mail *MailService,
	cfg *config.Config,
) AuthService {
	return &authService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		mail:      mail,
		cfg:       cfg,
	}
}

// NormalizeEmail lowercases and trims an address before any lookup or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func selfAssignableRole(role string) bool {
	return role == entity.RoleUser || role == entity.RolePublisher
}

func (s *authService) Register(ctx context.Context, name, email, password, role string) (*entity.User, error) {
	email = NormalizeEmail(email)

	if role == "" {
		role = entity.RoleUser
	}
	if !selfAssignableRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if err = s.cfg.PasswordPolicy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rawToken, tokenHash, err := s.tokens.GenerateOneTimeToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txUserRepo := repository.NewUserRepository(tx)
	if err = txUserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	txTokenRepo := repository.NewVerificationTokenRepository(tx)
	if err = txTokenRepo.Create(ctx, &entity.VerificationToken{
		UserID:    user.ID,
		Email:     user.Email,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.cfg.VerificationTokenTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// The user and token are committed before the notification attempt.
	// A failed send leaves the account in a recoverable "registered but
	// unnotified" state; /auth/resendconfirmation covers the retry.
	if err = s.mail.SendVerificationEmail(user.Email, user.Name, rawToken); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("failed to send verification email")
		return nil, fmt.Errorf("verification %w", ErrEmailDelivery)
	}

	return user, nil
}

// ConfirmEmail consumes a verification token and flips the referenced user to
// verified, adopting the token's email. Lookup, delete and user update run in
// one transaction with the token row locked, so a concurrent replay of the
// same raw token observes no row and fails.
func (s *authService) ConfirmEmail(ctx context.Context, rawToken string) (*entity.User, error) {
	tokenHash := HashToken(rawToken)
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txTokenRepo := repository.NewVerificationTokenRepository(tx)
	token, err := txTokenRepo.FindByHashForUpdate(ctx, tokenHash, now)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrInvalidToken
	}

	deleted, err := txTokenRepo.DeleteByID(ctx, token.ID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrInvalidToken
	}

	txUserRepo := repository.NewUserRepository(tx)
	user, err := txUserRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	user.IsVerified = true
	user.Email = token.Email
	if err = txUserRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Another account claimed this address since the token was issued.
			return nil, ErrUserExists
		}
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	rawToken, tokenHash, err := s.tokens.GenerateOneTimeToken()
	if err != nil {
		return err
	}

	now := time.Now()
	if err = s.tokenRepo.Create(ctx, &entity.VerificationToken{
		UserID:    user.ID,
		Email:     user.Email,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.cfg.VerificationTokenTTL),
		CreatedAt: now,
	}); err != nil {
		return err
	}

	if err = s.mail.SendVerificationEmail(user.Email, user.Name, rawToken); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("failed to resend verification email")
		return fmt.Errorf("verification %w", ErrEmailDelivery)
	}

	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password produce the same error so a caller
	// cannot tell which check failed.
	if user == nil {
		return nil, ErrInvalidCreds
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCreds
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	return user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	rawToken, tokenHash, err := s.tokens.GenerateOneTimeToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL)
	if err = s.userRepo.SetResetToken(ctx, user.ID,
		sql.NullString{String: tokenHash, Valid: true},
		sql.NullTime{Time: expiresAt, Valid: true},
	); err != nil {
		return err
	}

	if err = s.mail.SendResetPasswordEmail(user.Email, rawToken); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("failed to send reset email")
		// Unlike registration, the just-set reset fields are rolled back so
		// no orphaned reset token stays live after a failed send.
		if clearErr := s.userRepo.SetResetToken(ctx, user.ID, sql.NullString{}, sql.NullTime{}); clearErr != nil {
			logrus.WithError(clearErr).WithField("user_id", user.ID).Error("failed to clear reset token")
		}
		return fmt.Errorf("reset %w", ErrEmailDelivery)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) (*entity.User, error) {
	user, err := s.userRepo.FindByResetTokenHash(ctx, HashToken(rawToken), time.Now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	if err = s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetPasswordTokenHash = sql.NullString{}
	user.ResetPasswordExpiresAt = sql.NullTime{}
	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) UpdateDetails(ctx context.Context, userID uint64, name, role string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name != "" {
		user.Name = name
	}
	if role != "" {
		if !selfAssignableRole(role) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
		}
		user.Role = role
	}

	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uint64, currentPassword, newPassword string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, ErrPasswordWrong
	}

	if err = s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hashedPassword)
	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateEmail stages an email change. The user's stored address is untouched
// until the token sent to the new address is confirmed.
func (s *authService) UpdateEmail(ctx context.Context, user *entity.User, newEmail string) error {
	newEmail = NormalizeEmail(newEmail)
	if newEmail == user.Email {
		return ErrSameEmail
	}

	rawToken, tokenHash, err := s.tokens.GenerateOneTimeToken()
	if err != nil {
		return err
	}

	now := time.Now()
	if err = s.tokenRepo.Create(ctx, &entity.VerificationToken{
		UserID:    user.ID,
		Email:     newEmail,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(s.cfg.VerificationTokenTTL),
		CreatedAt: now,
	}); err != nil {
		return err
	}

	if err = s.mail.SendVerificationEmail(newEmail, user.Name, rawToken); err != nil {
		logrus.WithError(err).WithField("email", newEmail).Error("failed to send email-change verification")
		return fmt.Errorf("verification %w", ErrEmailDelivery)
	}

	return nil
}
