package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role - роль сотрудника
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleAgent Role = "AGENT"
)

// User - сотрудник агентства с доступом к back-office
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Registration - данные формы регистрации
type Registration struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
}

func (r Registration) Validate() error {
	return validateStruct(r)
}

// Normalized убирает пробелы по краям, email приводится к нижнему регистру.
// Пароль не трогаем.
func (r Registration) Normalized() Registration {
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return r
}

// NormalizeEmail - общая форма email для регистрации и входа
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal - то, что знает о пользователе обработчик запроса после проверки токена
type Principal struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	SessionID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// NewUser создает пользователя, пароль сразу хешируется
func NewUser(reg Registration, role Role) (*User, error) {
	reg = reg.Normalized()
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleAgent
	}
	return &User{
		ID:           uuid.New(),
		Email:        reg.Email,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword сравнивает пароль с хешем
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Session - серверная сессия, без нее токен не принимается
type Session struct {
	ID        string
	UserID    uuid.UUID
	Email     string
	Role      Role
	ExpiresAt time.Time
}
