// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/drycleaning-api/internal/core"
	"github.com/carterperez-dev/drycleaning-api/internal/middleware"
)

const invalidCredentialsMessage = "incorrect username or password"

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	service   *Service
	validator *validator.Validate
	cookie    CookieConfig
	logger    *slog.Logger
}

func NewHandler(
	service *Service,
	cookie CookieConfig,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		cookie:    cookie,
		logger:    logger,
	}
}

// RegisterRoutes mounts /auth. credentialLimit, when non-nil, guards the
// endpoints that accept a password.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	credentialLimit func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if credentialLimit != nil {
				r.Use(credentialLimit)
			}
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
		})

		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, err := h.service.Signup(r.Context(), req)
	if err != nil {
		WriteCreateError(w, err)
		return
	}

	core.Created(w, SignupResponse{
		Message: "User created successfully",
		User:    ToAccountResponse(account),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, invalidCredentialsMessage)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.setSessionCookie(w, token.Value)

	core.OK(w, LoginResponse{
		Message:   "Login successful",
		User:      ToAccountResponse(account),
		ExpiresAt: token.ExpiresAt,
	})
}

// Logout always succeeds and always clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r, h.cookie.Name)

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.WarnContext(r.Context(), "session revocation failed", "error", err)
	}

	h.clearSessionCookie(w)
	core.Message(w, http.StatusOK, "Logout successful")
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.CurrentAccount(
		r.Context(),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(account))
}

// WriteCreateError renders the outcomes of the bootstrap policy. The user
// directory shares it so both creation paths answer identically.
func WriteCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOwnerExists):
		core.JSONError(w, core.NewAppError(
			err,
			"Owner account exists",
			http.StatusForbidden,
			"OWNER_EXISTS",
		))
	case errors.Is(err, ErrEmailExists):
		core.JSONError(w, core.DuplicateError("email"))
	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
