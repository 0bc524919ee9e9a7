package wire

import (
	"strings"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (d RegisterDTO) Registration() domain.Registration {
	return domain.Registration{
		Email:     d.Email,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
}

// UserDTO - профиль без хеша пароля
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt Timestamp `json:"createdAt"`
}

func NewUserDTO(u domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.FullName(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: Timestamp{u.CreatedAt},
	}
}

// User переводит профиль обратно в доменную модель. Неизвестная роль читается как AGENT.
func (d UserDTO) User() domain.User {
	id, _ := uuid.Parse(d.ID)
	role := domain.Role(strings.ToUpper(strings.TrimSpace(d.Role)))
	if role != domain.RoleAdmin {
		role = domain.RoleAgent
	}
	return domain.User{
		ID:        id,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Role:      role,
		CreatedAt: d.CreatedAt.Time,
	}
}

type AuthResponseDTO struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserDTO   `json:"user"`
}

// ErrorDTO - тело ответа с ошибкой. Fields заполняется только для ошибок проверки.
type ErrorDTO struct {
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Success bool              `json:"success"`
}

// RenameFields переводит имена полей ошибки проверки во внешние
func RenameFields(fields map[string]string, names map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, msg := range fields {
		if ext, ok := names[k]; ok {
			k = ext
		}
		out[k] = msg
	}
	return out
}
