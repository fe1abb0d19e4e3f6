package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/models"
)

// UserServiceProvider defines the interface for account services.
type UserServiceProvider interface {
	CreateUser(name, email, password string) (models.User, error)
	AuthenticateUser(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
}

// UserService provides registration and login on top of the credential store.
type UserService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, events EventServiceProvider) *UserService {
	return &UserService{db: db, events: events}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, membership_tier, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.MembershipTier, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, email, password_hash, membership_tier, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.MembershipTier, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser registers a new member, hashing their password. The email must
// not already be taken; the membership tier starts unset.
func (s *UserService) CreateUser(name, email, password string) (models.User, error) {
	var existingID string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		return models.User{}, ErrDuplicateAccount
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Name, user.Email, string(hashedPassword)); err != nil {
		return models.User{}, err
	}

	s.recordEvent("user.register", fmt.Sprintf("New member registered: %s", user.Email), user.ID)
	return user, nil
}

// AuthenticateUser verifies a member's credentials. A missing account and a
// wrong password return the same error so account existence is not revealed.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	s.recordEvent("user.login", fmt.Sprintf("Member logged in: %s", user.Email), user.ID)

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// recordEvent writes an audit entry; failures are logged and never surface
// to the caller.
func (s *UserService) recordEvent(eventType, message, userID string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, "info", message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}
