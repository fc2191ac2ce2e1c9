package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskfeed/taskfeed-be/internal/auth"
	"github.com/taskfeed/taskfeed-be/internal/http/respond"
	"github.com/taskfeed/taskfeed-be/internal/models/dto"
)

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register creates a new account. Weak passwords come back as 400 with the
// first policy violation; username conflicts as 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := auth.ValidateUsername(req.Username); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Register(r.Context(), req.Username, req.Password); err != nil {
		var weak *auth.WeakPasswordError
		var taken *auth.UsernameTakenError
		switch {
		case errors.As(err, &weak):
			respond.Error(w, http.StatusBadRequest, weak.Error())
		case errors.As(err, &taken):
			respond.Error(w, http.StatusConflict, "username already exists")
		default:
			log.Ctx(r.Context()).Error().Err(err).Str("username", req.Username).
				Msg("register failed")
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, "user created successfully", nil)
}

// Login verifies the credentials and returns a signed token. An unknown
// username and a wrong password produce identical responses so the endpoint
// cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.svc.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
			log.Ctx(r.Context()).Debug().Err(err).Str("username", req.Username).
				Msg("login rejected")
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		default:
			log.Ctx(r.Context()).Error().Err(err).Str("username", req.Username).
				Msg("login failed")
			respond.Error(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token})
}
