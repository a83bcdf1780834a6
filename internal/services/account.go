package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/data/repos"
	types "github.com/yungbote/shiftplan-backend/internal/domain"
	"github.com/yungbote/shiftplan-backend/internal/domain/account"
	domainagg "github.com/yungbote/shiftplan-backend/internal/domain/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

const MinPasswordLength = 5

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrInactiveAccount = errors.New("account is inactive")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Profile  types.AccountProfile
}

type TokenResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Me is the caller's own account with derived fields.
type Me struct {
	*types.Account
	CompletionPercentage float64    `json:"completion_percentage"`
	OwnerID              *uuid.UUID `json:"owner_id,omitempty"`
	EmployeeID           *uuid.UUID `json:"employee_id,omitempty"`
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*types.Account, error)
	RegisterSuperuser(ctx context.Context, email, password string) (*types.Account, error)
	Authenticate(ctx context.Context, email, password string) (TokenResult, error)
	ParseToken(tokenString string) (uuid.UUID, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetMe(ctx context.Context, accountID uuid.UUID) (*Me, error)
	AccessTTL() time.Duration
}

type accountService struct {
	log          *logger.Logger
	accounts     repos.AccountRepo
	owners       repos.OwnerRepo
	employees    repos.EmployeeRepo
	jwtSecretKey []byte
	accessTTL    time.Duration
	bcryptCost   int
	now          func() time.Time
}

func NewAccountService(
	log *logger.Logger,
	accounts repos.AccountRepo,
	owners repos.OwnerRepo,
	employees repos.EmployeeRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AccountService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &accountService{
		log:          log.With("service", "AccountService"),
		accounts:     accounts,
		owners:       owners,
		employees:    employees,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
		bcryptCost:   bcrypt.DefaultCost,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *accountService) AccessTTL() time.Duration { return s.accessTTL }

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*types.Account, error) {
	return s.register(ctx, "Account.Register", in, false)
}

func (s *accountService) RegisterSuperuser(ctx context.Context, email, password string) (*types.Account, error) {
	return s.register(ctx, "Account.RegisterSuperuser", RegisterInput{Email: email, Password: password}, true)
}

func (s *accountService) register(ctx context.Context, op string, in RegisterInput, superuser bool) (*types.Account, error) {
	email := account.NormalizeEmail(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "email is required", nil)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength), nil)
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := s.accounts.EmailExists(dbc, email)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if exists {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, "an account with this email already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, fmt.Errorf("hash password: %w", err))
	}

	row := &types.Account{
		Email:       email,
		Password:    string(hash),
		Name:        strings.TrimSpace(in.Name),
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
	}
	row.ApplyProfile(in.Profile)

	if _, err := s.accounts.Create(dbc, []*types.Account{row}); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	s.log.Info("Account registered", "account_id", row.ID, "superuser", superuser)
	return row, nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password string) (TokenResult, error) {
	const op = "Account.Authenticate"
	invalid := domainagg.NewError(domainagg.CodeValidation, op, "unable to log in with provided credentials", nil)

	email = account.NormalizeEmail(strings.TrimSpace(email))
	if email == "" || password == "" {
		return TokenResult{}, invalid
	}
	dbc := dbctx.Context{Ctx: ctx}
	acct, err := s.accounts.GetByEmail(dbc, email)
	if err != nil {
		return TokenResult{}, aggregates.MapError(op, err)
	}
	if acct == nil {
		return TokenResult{}, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return TokenResult{}, invalid
	}
	if !acct.IsActive {
		return TokenResult{}, domainagg.NewError(domainagg.CodeValidation, op, ErrInactiveAccount.Error(), ErrInactiveAccount)
	}

	now := s.now()
	token, expiresAt, err := s.generateAccessToken(acct.ID, now)
	if err != nil {
		return TokenResult{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if err := s.accounts.UpdateFields(dbc, acct.ID, map[string]interface{}{"last_login": now}); err != nil {
		s.log.Warn("Failed to record last login", "account_id", acct.ID, "error", err)
	}
	return TokenResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.accessTTL.Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *accountService) generateAccessToken(accountID uuid.UUID, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *accountService) ParseToken(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return uuid.Nil, ErrInvalidToken
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

func (s *accountService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	accountID, err := s.ParseToken(tokenString)
	if err != nil {
		return ctx, err
	}
	acct, err := s.accounts.GetByID(dbctx.Context{Ctx: ctx}, accountID)
	if err != nil {
		return ctx, fmt.Errorf("load account: %w", err)
	}
	if acct == nil {
		return ctx, ErrInvalidToken
	}
	if !acct.IsActive {
		return ctx, ErrInactiveAccount
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		AccountID:   acct.ID,
		IsSuperuser: acct.IsSuperuser,
	}), nil
}

func (s *accountService) GetMe(ctx context.Context, accountID uuid.UUID) (*Me, error) {
	const op = "Account.GetMe"
	dbc := dbctx.Context{Ctx: ctx}
	acct, err := s.accounts.GetByID(dbc, accountID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if acct == nil {
		return nil, aggregates.NotFoundError(op, "account")
	}
	me := &Me{Account: acct, CompletionPercentage: account.CompletionPercentage(acct)}
	if s.owners != nil {
		owner, err := s.owners.GetByAccountID(dbc, acct.ID)
		if err != nil {
			return nil, aggregates.MapError(op, err)
		}
		if owner != nil {
			me.OwnerID = &owner.ID
		}
	}
	if s.employees != nil {
		emp, err := s.employees.GetByAccountID(dbc, acct.ID)
		if err != nil {
			return nil, aggregates.MapError(op, err)
		}
		if emp != nil {
			me.EmployeeID = &emp.ID
		}
	}
	return me, nil
}
