package rest

import (
	"net/http"

	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/port"
	"realty-backoffice/internal/core/port/usecases_port"
	"realty-backoffice/internal/wire"
)

type AuthHandlers struct {
	registerUC usecases_port.RegisterUserUseCase
	loginUC    usecases_port.LoginUserUseCase
	logoutUC   usecases_port.LogoutUserUseCase
	profileUC  usecases_port.GetProfileUseCase
}

func NewAuthHandlers(
	registerUC usecases_port.RegisterUserUseCase,
	loginUC usecases_port.LoginUserUseCase,
	logoutUC usecases_port.LogoutUserUseCase,
	profileUC usecases_port.GetProfileUseCase,
) *AuthHandlers {
	return &AuthHandlers{
		registerUC: registerUC,
		loginUC:    loginUC,
		logoutUC:   logoutUC,
		profileUC:  profileUC,
	}
}

// Register обрабатывает POST /auth/register. Сразу после регистрации выдается токен.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req wire.RegisterDTO
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing register request", nil)

	user, err := h.registerUC.Execute(r.Context(), req.Registration())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	res, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	handlerLogger.Info("User registered successfully", port.Fields{"user_id": user.ID.String()})
	RespondWithJSON(w, http.StatusCreated, authResponse(res))
}

// Login обрабатывает POST /auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req wire.LoginDTO
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, nil)
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing login request", nil)

	res, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	handlerLogger.Info("User logged in successfully", port.Fields{"user_id": res.User.ID.String()})
	RespondWithJSON(w, http.StatusOK, authResponse(res))
}

func authResponse(res *usecases_port.LoginResult) wire.AuthResponseDTO {
	return wire.AuthResponseDTO{
		Success:   true,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      wire.NewUserDTO(*res.User),
	}
}

// Logout обрабатывает POST /auth/logout
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	if err := h.logoutUC.Execute(r.Context(), principal); err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.MessageDTO{Success: true, Message: "Logged out"})
}

// Profile обрабатывает GET /auth/profile
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	user, err := h.profileUC.Execute(r.Context(), principal)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, wire.NewUserDTO(*user))
}
