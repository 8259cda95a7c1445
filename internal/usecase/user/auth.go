package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointease/internal/domain/user"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
)

const tokenTTL = 24 * time.Hour

// Session is what signup and login hand back to the client.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Tokens signs HS256 access tokens carrying the user id and role.
type Tokens struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func (t Tokens) Issue(u *models.User) (string, error) {
	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	ttl := t.TTL
	if ttl <= 0 {
		ttl = tokenTTL
	}

	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.Secret))
}

// ======================================================
// SIGNUP
// ======================================================

type Signup struct {
	Deps
	Tokens Tokens
}

func NewSignup(deps Deps, tokens Tokens) *Signup {
	return &Signup{Deps: deps, Tokens: tokens}
}

// Execute registers a regular user. The role field is ignored.
func (uc *Signup) Execute(ctx context.Context, in Account) (*Session, error) {
	in.Role = models.RoleUser
	acc, err := in.validateNew()
	if err != nil {
		return nil, err
	}

	if err := uc.ensureUsernameFree(ctx, acc.Username, ""); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(acc.Password)
	if err != nil {
		return nil, err
	}

	u := models.User{
		Username:     acc.Username,
		FullName:     acc.FullName,
		PasswordHash: hashed,
		Phone:        acc.Phone,
		Role:         models.RoleUser,
	}
	if err := uc.Repo.Create(ctx, &u); err != nil {
		return nil, fmt.Errorf("signup: operation did not commit: %w", err)
	}

	token, err := uc.Tokens.Issue(&u)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, u.ID, "user_signed_up", u.ID)
	return &Session{User: u, Token: token}, nil
}

// ======================================================
// LOGIN
// ======================================================

type Login struct {
	Deps
	Tokens Tokens
}

func NewLogin(deps Deps, tokens Tokens) *Login {
	return &Login{Deps: deps, Tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, username, password string) (*Session, error) {
	u, err := uc.Repo.GetByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	token, err := uc.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: *u, Token: token}, nil
}
