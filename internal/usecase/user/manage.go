package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	domain "github.com/BruksfildServices01/appointease/internal/domain/user"
	"github.com/BruksfildServices01/appointease/internal/models"
)

// ======================================================
// PROFILE
// ======================================================

type GetProfile struct {
	Deps
}

func NewGetProfile(deps Deps) *GetProfile {
	return &GetProfile{Deps: deps}
}

func (uc *GetProfile) Execute(ctx context.Context, userID string) (*models.User, error) {
	return uc.get(ctx, userID)
}

type UpdateProfile struct {
	Deps
}

func NewUpdateProfile(deps Deps) *UpdateProfile {
	return &UpdateProfile{Deps: deps}
}

// Execute lets a user change their full name, phone and password.
func (uc *UpdateProfile) Execute(ctx context.Context, userID string, in Account) (*models.User, error) {
	u, err := uc.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	in.Username, in.Role = "", ""
	if _, err := in.apply(u); err != nil {
		return nil, err
	}

	if err := uc.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: operation did not commit: %w", err)
	}

	uc.record(ctx, userID, "profile_updated", u.ID)
	return u, nil
}

// ======================================================
// ADMIN
// ======================================================

// UserSummary is a user with their appointment counts.
type UserSummary struct {
	models.User
	Stats appointment.Stats `json:"stats"`
}

type ListUsers struct {
	Deps
	Appointments appointment.Repository
}

func NewListUsers(deps Deps, appointments appointment.Repository) *ListUsers {
	return &ListUsers{Deps: deps, Appointments: appointments}
}

func (uc *ListUsers) Execute(ctx context.Context, role string) ([]UserSummary, error) {
	users, err := uc.Repo.List(ctx, role)
	if err != nil {
		return nil, err
	}

	aps, err := uc.Appointments.ListAppointments(ctx, appointment.ListFilter{})
	if err != nil {
		return nil, err
	}
	stats := appointment.StatsByUser(appointment.PromoteElapsed(aps, uc.now()))

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{User: u, Stats: stats[u.ID]})
	}
	return out, nil
}

type CreateUser struct {
	Deps
}

func NewCreateUser(deps Deps) *CreateUser {
	return &CreateUser{Deps: deps}
}

// Execute creates an account with any role.
func (uc *CreateUser) Execute(ctx context.Context, adminID string, in Account) (*models.User, error) {
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
		Role:         acc.Role,
	}
	if err := uc.Repo.Create(ctx, &u); err != nil {
		return nil, fmt.Errorf("create user: operation did not commit: %w", err)
	}

	uc.record(ctx, adminID, "user_created", u.ID)
	return &u, nil
}

type UpdateUser struct {
	Deps
}

func NewUpdateUser(deps Deps) *UpdateUser {
	return &UpdateUser{Deps: deps}
}

func (uc *UpdateUser) Execute(ctx context.Context, adminID, userID string, in Account) (*models.User, error) {
	u, err := uc.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed, err := in.apply(u)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := uc.ensureUsernameFree(ctx, u.Username, u.ID); err != nil {
			return nil, err
		}
	}

	if err := uc.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: operation did not commit: %w", err)
	}

	uc.record(ctx, adminID, "user_updated", u.ID)
	return u, nil
}

// ======================================================
// SEED
// ======================================================

type SeedAdmin struct {
	Deps
}

func NewSeedAdmin(deps Deps) *SeedAdmin {
	return &SeedAdmin{Deps: deps}
}

// Execute creates the admin account, or promotes and resets the password of
// an existing account with that username. It reports whether a new account
// was created.
func (uc *SeedAdmin) Execute(ctx context.Context, username, password string) (bool, error) {
	acc := Account{Username: username, FullName: "Administrator", Password: password, Role: models.RoleAdmin}

	existing, err := uc.Repo.GetByUsername(ctx, domain.NormalizeUsername(username))
	switch {
	case err == nil:
		acc.FullName = ""
		if _, err := acc.apply(existing); err != nil {
			return false, err
		}
		if err := uc.Repo.Update(ctx, existing); err != nil {
			return false, err
		}
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}

	if _, err := NewCreateUser(uc.Deps).Execute(ctx, "", acc); err != nil {
		return false, err
	}
	return true, nil
}
