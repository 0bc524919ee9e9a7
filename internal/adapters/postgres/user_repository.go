package postgres

import (
	"context"
	"errors"
	"fmt"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// UserRepository - реализация UserRepositoryPort для PostgreSQL
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) (*UserRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &UserRepository{db: db}, nil
}

// Save создает нового пользователя в БД
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "Save",
		"user_id":   user.ID.String(),
		"email":     user.Email,
	})

	query := `INSERT INTO users (id, email, first_name, last_name, password_hash, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.FirstName, user.LastName, user.PasswordHash, string(user.Role), user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailInUse
		}
		repoLogger.Error("Failed to create user", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create user: %w", err)
	}

	repoLogger.Debug("User created successfully.", nil)
	return nil
}

// FindByEmail возвращает (nil, nil), если пользователь не найден
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// FindByID - аналогично FindByEmail, некорректный ID считается ненайденным
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "FindByID", "id", userID)
}

func (r *UserRepository) findOne(ctx context.Context, method, column string, value interface{}) (*domain.User, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "UserRepository",
		"method":    method,
	})

	query := `SELECT id, email, first_name, last_name, password_hash, role, created_at FROM users WHERE ` + column + ` = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("User not found.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find user", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
