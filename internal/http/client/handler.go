package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/events"
	"github.com/MrJamesThe3rd/invoicely/internal/http/respond"
)

const (
	kind  = "Client"
	table = "clients"
)

type Handler struct {
	svc    *client.Service
	events events.Publisher
}

func NewHandler(svc *client.Service, publisher events.Publisher) *Handler {
	return &Handler{svc: svc, events: publisher}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// list answers GET /clients?q=term.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	clients, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	respond.JSON(w, http.StatusOK, dashboard.FilterClients(respond.Values(clients), r.URL.Query().Get("q")))
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

	c, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	respond.JSON(w, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var params client.CreateParams
	if !respond.Decode(w, r, &params) {
		return
	}

	c, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionCreated, UserID: userID, ID: c.ID, Record: c,
	})

	respond.JSON(w, http.StatusCreated, c)
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

	var params client.UpdateParams
	if !respond.Decode(w, r, &params) {
		return
	}

	c, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionUpdated, UserID: userID, ID: c.ID, Record: c,
	})

	respond.JSON(w, http.StatusOK, c)
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
