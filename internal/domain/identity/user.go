package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords alike
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

// ErrUsernameTaken is returned when another user has the username
var ErrUsernameTaken = shared.NewDomainError("ALREADY_EXISTS", "A user with that username already exists")

// User is an account that places orders, writes reviews and authors posts.
// Staff users may sign in to the admin.
type User struct {
	shared.BaseEntity
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(254);not null;default:''"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	IsStaff      bool       `gorm:"not null;default:false"`
	IsActive     bool       `gorm:"not null"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active, non-staff user with a hashed password
func NewUser(username, email, password string) (*User, error) {
	u := &User{IsActive: true}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetUsername validates and sets the username
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return shared.NewValidationError("Username cannot be empty")
	case utf8.RuneCountInString(username) > 150:
		return shared.NewValidationError("Username cannot exceed 150 characters")
	case !usernamePattern.MatchString(username):
		return shared.NewValidationError("Username may contain only letters, digits and @/./+/-/_")
	}
	u.Username = username
	return nil
}

// SetEmail validates and sets the email; an empty email is allowed
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && (len(email) > 254 || !emailPattern.MatchString(email)) {
		return shared.NewValidationError("Invalid email format")
	}
	u.Email = email
	return nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("Password cannot exceed 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanAccessAdmin reports whether the user may use the admin
func (u *User) CanAccessAdmin() bool {
	return u.IsActive && u.IsStaff
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

func (u User) String() string {
	return u.Username
}
