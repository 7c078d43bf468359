// AngelaMos | 2026
// handler.go

package ledger

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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
	r.Route("/ledger", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/dashboard", h.GetDashboard)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Put("/{id}", h.UpdateCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
			r.Get("/{id}/stats", h.GetCustomerStats)
			r.Get("/{id}/history", h.GetCustomerHistory)
		})

		r.Route("/clothes", func(r chi.Router) {
			r.Get("/", h.ListClothes)
			r.Post("/", h.CreateCloth)
			r.Get("/{id}", h.GetCloth)
			r.Put("/{id}", h.UpdateCloth)
			r.Delete("/{id}", h.DeleteCloth)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.CreateEntry)
			r.Get("/{id}", h.GetEntry)
			r.Delete("/{id}", h.DeleteEntry)
			r.Put("/{id}/paid", h.SetEntryPaid)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)
			r.Post("/", h.CreateStaff)
			r.Get("/{id}", h.GetStaff)
			r.Put("/{id}", h.UpdateStaff)
			r.Delete("/{id}", h.DeleteStaff)
		})
	})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, err, "entry")
		return
	}
	core.OK(w, d)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err, "customer")
		return
	}
	core.OK(w, customers)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		writeError(w, err, "customer")
		return
	}
	core.Created(w, c)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "customer")
		return
	}
	core.OK(w, c)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err, "customer")
		return
	}
	core.OK(w, c)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "customer")
		return
	}
	core.NoContent(w)
}

func (h *Handler) GetCustomerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CustomerStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "customer")
		return
	}
	core.OK(w, stats)
}

func (h *Handler) GetCustomerHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.CustomerHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "customer")
		return
	}
	core.OK(w, history)
}

func (h *Handler) ListClothes(w http.ResponseWriter, r *http.Request) {
	clothes, err := h.service.ListClothes(r.Context())
	if err != nil {
		writeError(w, err, "cloth")
		return
	}
	core.OK(w, clothes)
}

func (h *Handler) CreateCloth(w http.ResponseWriter, r *http.Request) {
	var req ClothRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.CreateCloth(r.Context(), req)
	if err != nil {
		writeError(w, err, "cloth")
		return
	}
	core.Created(w, c)
}

func (h *Handler) GetCloth(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCloth(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "cloth")
		return
	}
	core.OK(w, c)
}

func (h *Handler) UpdateCloth(w http.ResponseWriter, r *http.Request) {
	var req ClothRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.UpdateCloth(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err, "cloth")
		return
	}
	core.OK(w, c)
}

func (h *Handler) DeleteCloth(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCloth(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "cloth")
		return
	}
	core.NoContent(w)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	params := ListEntriesParams{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if err := h.validator.Struct(params); err != nil {
		core.JSONError(w, core.ValidationError(core.FieldErrors(err)))
		return
	}

	entries, err := h.service.ListEntries(r.Context(), params)
	if err != nil {
		writeError(w, err, "entry")
		return
	}
	core.OK(w, entries)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	e, err := h.service.CreateEntry(r.Context(), req)
	if err != nil {
		writeError(w, err, "entry")
		return
	}
	core.Created(w, e)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "entry")
		return
	}
	core.OK(w, e)
}

func (h *Handler) SetEntryPaid(w http.ResponseWriter, r *http.Request) {
	var req SetPaidRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	e, err := h.service.SetPaid(r.Context(), chi.URLParam(r, "id"), *req.IsPaid)
	if err != nil {
		writeError(w, err, "entry")
		return
	}
	core.OK(w, e)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "entry")
		return
	}
	core.NoContent(w)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.service.ListStaff(r.Context())
	if err != nil {
		writeError(w, err, "staff member")
		return
	}
	core.OK(w, staff)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	m, err := h.service.CreateStaff(r.Context(), req)
	if err != nil {
		writeError(w, err, "staff member")
		return
	}
	core.Created(w, m)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetStaff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "staff member")
		return
	}
	core.OK(w, m)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if !core.DecodeAndValidate(w, r, h.validator, &req) {
		return
	}

	m, err := h.service.UpdateStaff(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err, "staff member")
		return
	}
	core.OK(w, m)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteStaff(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "staff member")
		return
	}
	core.NoContent(w)
}

func writeError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, ErrUnknownCloth):
		core.JSONError(w, core.ValidationError(map[string]string{
			"items": err.Error(),
		}))
	case errors.Is(err, ErrUnknownCustomer):
		core.JSONError(w, core.ValidationError(map[string]string{
			"customerId": err.Error(),
		}))
	case errors.Is(err, core.ErrConflict), errors.Is(err, ErrStoreContention):
		core.JSONError(w, core.NewAppError(
			err,
			"ledger was modified concurrently, retry the request",
			http.StatusConflict,
			"CONFLICT",
		))
	default:
		core.InternalServerError(w, err)
	}
}
