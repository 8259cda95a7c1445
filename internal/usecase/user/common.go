package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	domain "github.com/BruksfildServices01/appointease/internal/domain/user"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
	"github.com/BruksfildServices01/appointease/internal/validators"
)

type auditDispatcher interface {
	Dispatch(ev audit.Event)
}

type Deps struct {
	Repo   domain.Repository
	Audit  auditDispatcher
	Events notify.Publisher
	Now    func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) record(ctx context.Context, actorID, action, userID string) {
	if d.Audit != nil {
		d.Audit.Dispatch(audit.Event{
			UserID:   audit.Str(actorID),
			Action:   action,
			Entity:   "user",
			EntityID: audit.Str(userID),
		})
	}
	if d.Events != nil {
		d.Events.Publish(ctx, notify.Change{
			Topic:    notify.TopicUsers,
			Action:   action,
			ID:       userID,
			At:       d.now().UTC(),
			Audience: userID,
		})
	}
}

func (d Deps) get(ctx context.Context, id string) (*models.User, error) {
	u, err := d.Repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return u, err
}

// ensureUsernameFree fails with username_taken when another account owns
// username.
func (d Deps) ensureUsernameFree(ctx context.Context, username, exceptID string) error {
	existing, err := d.Repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != exceptID:
		return httperr.ErrBusiness("username_taken")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Account carries the editable fields of a user. Empty optional fields in
// an update leave the stored value alone.
type Account struct {
	Username string
	FullName string
	Password string
	Phone    string
	Role     string
}

func (a Account) validateNew() (Account, error) {
	verr := &appointment.ValidationError{}

	a.Username = domain.NormalizeUsername(a.Username)
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)

	if !validators.IsUsernameValid(a.Username) {
		verr.Add("username", "must be 3-50 letters, digits, dots, dashes or underscores")
	}
	if a.FullName == "" {
		verr.Add("full_name", "is required")
	}
	if !validators.IsPasswordValid(a.Password) {
		verr.Add("password", "is too short")
	}
	if !validators.IsPhoneValid(a.Phone) {
		verr.Add("phone", "is not a valid phone number")
	}
	if a.Role == "" {
		a.Role = models.RoleUser
	} else if !domain.ValidRole(a.Role) {
		verr.Add("role", "must be user or admin")
	}

	return a, verr.Err()
}

// apply validates the non-empty fields of a and writes them onto u.
func (a Account) apply(u *models.User) (usernameChanged bool, err error) {
	verr := &appointment.ValidationError{}

	if a.Username != "" {
		name := domain.NormalizeUsername(a.Username)
		if !validators.IsUsernameValid(name) {
			verr.Add("username", "must be 3-50 letters, digits, dots, dashes or underscores")
		}
		usernameChanged = name != u.Username
		u.Username = name
	}
	if name := strings.TrimSpace(a.FullName); name != "" {
		u.FullName = name
	}
	if a.Phone != "" {
		if !validators.IsPhoneValid(a.Phone) {
			verr.Add("phone", "is not a valid phone number")
		}
		u.Phone = strings.TrimSpace(a.Phone)
	}
	if a.Role != "" {
		if !domain.ValidRole(a.Role) {
			verr.Add("role", "must be user or admin")
		}
		u.Role = a.Role
	}
	if a.Password != "" {
		if !validators.IsPasswordValid(a.Password) {
			verr.Add("password", "is too short")
		} else if u.PasswordHash, err = hashPassword(a.Password); err != nil {
			return false, err
		}
	}

	return usernameChanged, verr.Err()
}
