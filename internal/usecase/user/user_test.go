package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/infra/repository"
	"github.com/BruksfildServices01/appointease/internal/models"
)

func setup(t *testing.T) (Deps, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return Deps{Repo: repository.NewUserGormRepository(db)}, db
}

var testTokens = Tokens{Secret: "test-secret"}

func TestSignupAndLogin(t *testing.T) {
	deps, _ := setup(t)
	ctx := context.Background()

	session, err := NewSignup(deps, testTokens).Execute(ctx, Account{
		Username: "  Alice ",
		FullName: "Alice Doe",
		Password: "s3cret",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if session.User.Username != "alice" || session.User.Role != models.RoleUser {
		t.Fatalf("expected a normalized regular user, got %+v", session.User)
	}

	token, err := jwt.Parse(session.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testTokens.Secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != session.User.ID || claims["role"] != models.RoleUser {
		t.Fatalf("unexpected claims: %v", claims)
	}

	login := NewLogin(deps, testTokens)
	if _, err := login.Execute(ctx, "ALICE", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := login.Execute(ctx, "alice", "wrong"); !httperr.IsBusiness(err, "invalid_credentials") {
		t.Fatalf("expected invalid_credentials, got %v", err)
	}
	if _, err := login.Execute(ctx, "nobody", "s3cret"); !httperr.IsBusiness(err, "invalid_credentials") {
		t.Fatalf("expected invalid_credentials, got %v", err)
	}

	_, err = NewSignup(deps, testTokens).Execute(ctx, Account{Username: "alice", FullName: "Other", Password: "pass"})
	if !httperr.IsBusiness(err, "username_taken") {
		t.Fatalf("expected username_taken, got %v", err)
	}
}

func TestSignup_Validation(t *testing.T) {
	deps, _ := setup(t)

	_, err := NewSignup(deps, testTokens).Execute(context.Background(), Account{Username: "a!", Password: "123"})

	var verr *appointment.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"username", "full_name", "password"} {
		if verr.FieldErrors[f] == "" {
			t.Errorf("expected an error on %s, got %v", f, verr.FieldErrors)
		}
	}
}

func TestUpdateProfile_KeepsRoleAndUsername(t *testing.T) {
	deps, _ := setup(t)
	ctx := context.Background()

	s, err := NewSignup(deps, testTokens).Execute(ctx, Account{Username: "bob", FullName: "Bob", Password: "pass"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	u, err := NewUpdateProfile(deps).Execute(ctx, s.User.ID, Account{
		Username: "mallory",
		Role:     models.RoleAdmin,
		Phone:    "+1 555 0100",
		Password: "newpass",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Username != "bob" || u.Role != models.RoleUser || u.FullName != "Bob" || u.Phone != "+1 555 0100" {
		t.Fatalf("unexpected profile: %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpass")) != nil {
		t.Fatalf("password was not changed")
	}
}

func TestAdminUserManagement(t *testing.T) {
	deps, db := setup(t)
	ctx := context.Background()

	created, err := NewCreateUser(deps).Execute(ctx, "admin-1", Account{
		Username: "carol", FullName: "Carol", Password: "pass", Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %s", created.Role)
	}

	dave, err := NewCreateUser(deps).Execute(ctx, "admin-1", Account{Username: "dave", FullName: "Dave", Password: "pass"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := NewUpdateUser(deps)
	if _, err := update.Execute(ctx, "admin-1", dave.ID, Account{Username: "carol"}); !httperr.IsBusiness(err, "username_taken") {
		t.Fatalf("expected username_taken, got %v", err)
	}
	if _, err := update.Execute(ctx, "admin-1", "missing", Account{FullName: "x"}); !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}

	ap := models.Appointment{
		UserID: dave.ID, Title: "Intro", Date: "2030-05-10",
		StartTime: "10:00", EndTime: "11:00", Status: "pending",
	}
	if err := db.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	deps.Now = func() time.Time { return time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC) }
	list, err := NewListUsers(deps, repository.NewAppointmentGormRepository(db)).Execute(ctx, models.RoleUser)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != dave.ID || list[0].Stats.Pending != 1 {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func TestSeedAdmin(t *testing.T) {
	deps, _ := setup(t)
	ctx := context.Background()
	seed := NewSeedAdmin(deps)

	created, err := seed.Execute(ctx, "root", "toor")
	if err != nil || !created {
		t.Fatalf("expected the admin to be created, got %v (%v)", created, err)
	}

	created, err = seed.Execute(ctx, "root", "changed")
	if err != nil || created {
		t.Fatalf("expected an update of the existing admin, got %v (%v)", created, err)
	}

	if _, err := NewLogin(deps, testTokens).Execute(ctx, "root", "changed"); err != nil {
		t.Fatalf("login with the new password: %v", err)
	}
}
