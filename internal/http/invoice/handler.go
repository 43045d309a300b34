package invoice

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicely/internal/apperr"
	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/events"
	"github.com/MrJamesThe3rd/invoicely/internal/http/respond"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
	"github.com/MrJamesThe3rd/invoicely/internal/validation"
)

const (
	kind  = "Invoice"
	table = "invoices"
)

type Handler struct {
	svc     *invoice.Service
	clients *client.Service
	events  events.Publisher
}

func NewHandler(svc *invoice.Service, clients *client.Service, publisher events.Publisher) *Handler {
	return &Handler{svc: svc, clients: clients, events: publisher}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/totals", h.totals)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// list answers GET /invoices?q=term&status=paid. The term also matches client names.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	term := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")

	if status != "" && !strings.EqualFold(strings.TrimSpace(status), dashboard.StatusAll) {
		if _, err := invoice.ParseStatus(status); err != nil {
			respond.Err(w, r, apperr.NewValidationError("status", err.Error()), kind)
			return
		}
	}

	invoices, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	var clients []client.Client

	if strings.TrimSpace(term) != "" {
		all, err := h.clients.List(r.Context(), userID)
		if err != nil {
			respond.Err(w, r, err, kind)
			return
		}

		clients = respond.Values(all)
	}

	respond.JSON(w, http.StatusOK, dashboard.FilterInvoices(respond.Values(invoices), clients, term, status))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	respond.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var params invoice.CreateParams
	if !respond.Decode(w, r, &params) {
		return
	}

	inv, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionCreated, UserID: userID, ID: inv.ID, Record: inv,
	})

	respond.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var params invoice.UpdateParams
	if !respond.Decode(w, r, &params) {
		return
	}

	inv, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionUpdated, UserID: userID, ID: inv.ID, Record: inv,
	})

	respond.JSON(w, http.StatusOK, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionDeleted, UserID: userID, ID: id,
	})

	w.WriteHeader(http.StatusNoContent)
}

type totalsRequest struct {
	Items   []invoice.Item `json:"items" validate:"dive"`
	TaxRate float64        `json:"tax_rate" validate:"gte=0"`
}

// totals prices a draft's items without storing anything.
func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	var req totalsRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := validation.Struct(req); err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	respond.JSON(w, http.StatusOK, invoice.ComputeTotals(req.Items, req.TaxRate))
}
