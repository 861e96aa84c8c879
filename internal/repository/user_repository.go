package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/AlexSaifo/school-management-system-sub003/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string, role models.UserRole) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	ListActiveUserIDs(ctx context.Context) ([]string, error)
	ListActiveUserIDsByRole(ctx context.Context, role models.UserRole) ([]string, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (u *userRepository) CreateUser(ctx context.Context, email, password, firstName, lastName string, role models.UserRole) (models.User, error) {
	if !models.IsValidRole(role) {
		return models.User{}, errors.New("invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, errors.Wrap(err, "hash password")
	}

	user := models.User{
		Email:        strings.TrimSpace(email),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	const query = `
		INSERT INTO school.users (email, first_name, last_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err = u.db.QueryRowContext(ctx, query, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.Role, user.IsActive).Scan(&user.ID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (u *userRepository) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	var user models.User

	const query = `
		SELECT id, email, first_name, last_name, password_hash, role, is_active
		FROM school.users
		WHERE email = $1 AND deleted_at IS NULL`
	err := u.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errors.New("invalid credentials")
		}
		return models.User{}, err
	}

	if !user.IsActive {
		return models.User{}, errors.New("user is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, errors.New("invalid credentials")
	}

	return user, nil
}

func (u *userRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User

	const query = `
		SELECT id, email, first_name, last_name, password_hash, role, is_active
		FROM school.users
		WHERE id = $1 AND deleted_at IS NULL`
	err := u.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
	)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (u *userRepository) ListActiveUserIDs(ctx context.Context) ([]string, error) {
	const query = `
		SELECT id FROM school.users
		WHERE is_active AND deleted_at IS NULL
		ORDER BY created_at, id`
	return u.queryIDs(ctx, query)
}

func (u *userRepository) ListActiveUserIDsByRole(ctx context.Context, role models.UserRole) ([]string, error) {
	const query = `
		SELECT id FROM school.users
		WHERE role = $1 AND is_active AND deleted_at IS NULL
		ORDER BY created_at, id`
	return u.queryIDs(ctx, query, role)
}

func (u *userRepository) queryIDs(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := u.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
