// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/drycleaning-api/internal/auth"
	"github.com/carterperez-dev/drycleaning-api/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/user", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/create", h.CreateUser)
		r.Get("/get", h.ListUsers)
		r.Get("/get/{userID}", h.GetUser)
		r.Delete("/delete/{userID}", h.DeleteUser)
	})
}

// CreateUser shares the bootstrap rule with public signup.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	info, err := h.service.Register(r.Context(), auth.NewAccount{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		auth.WriteCreateError(w, err)
		return
	}

	core.Created(w, CreateUserResponse{
		Message: "User created successfully",
		User: UserResponse{
			ID:        info.ID,
			Email:     info.Email,
			Name:      info.Name,
			Role:      info.Role,
			CreatedAt: info.CreatedAt,
			UpdatedAt: info.CreatedAt,
		},
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(accounts))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	account, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(account))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if err := h.validator.Var(userID, "required,uuid"); err != nil {
		core.JSONError(w, core.ValidationError(map[string]string{
			"id": "must be a valid UUID",
		}))
		return "", false
	}
	return userID, true
}
