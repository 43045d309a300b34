package timeentry

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/events"
	"github.com/MrJamesThe3rd/invoicely/internal/export"
	"github.com/MrJamesThe3rd/invoicely/internal/http/respond"
	"github.com/MrJamesThe3rd/invoicely/internal/importer"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

const (
	kind  = "Time entry"
	table = "time_entries"

	maxUploadSize = 10 << 20
)

type Handler struct {
	svc       *timeentry.Service
	clients   *client.Service
	importSvc *importer.Service
	exportSvc *export.Service
	events    events.Publisher
}

func NewHandler(
	svc *timeentry.Service,
	clients *client.Service,
	importSvc *importer.Service,
	exportSvc *export.Service,
	publisher events.Publisher,
) *Handler {
	return &Handler{
		svc:       svc,
		clients:   clients,
		importSvc: importSvc,
		exportSvc: exportSvc,
		events:    publisher,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("multipart/form-data")).Post("/import", h.importCSV)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/export", h.exportCSV)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	respond.JSON(w, http.StatusOK, respond.Values(entries))
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

	e, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	respond.JSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	var params timeentry.CreateParams
	if !respond.Decode(w, r, &params) {
		return
	}

	e, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionCreated, UserID: userID, ID: e.ID, Record: e,
	})

	respond.JSON(w, http.StatusCreated, e)
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

	var params timeentry.UpdateParams
	if !respond.Decode(w, r, &params) {
		return
	}

	e, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	events.Notify(r.Context(), h.events, events.Event{
		Table: table, Action: events.ActionUpdated, UserID: userID, ID: e.ID, Record: e,
	})

	respond.JSON(w, http.StatusOK, e)
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

type importResponse struct {
	Imported    int                      `json:"imported"`
	Skipped     int                      `json:"skipped"`
	TimeEntries []timeentry.TimeEntry    `json:"time_entries"`
	Duplicates  []timeentry.CreateParams `json:"duplicates"`
}

// importCSV takes a multipart upload with a "file" export and an optional "format"
// (toggl, clockify or auto).
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	entries, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	clients, err := h.clients.List(r.Context(), userID)
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	result, err := h.svc.ImportBatch(r.Context(), userID, importer.Resolve(entries, respond.Values(clients)))
	if err != nil {
		respond.Err(w, r, err, kind)
		return
	}

	for _, e := range result.Imported {
		events.Notify(r.Context(), h.events, events.Event{
			Table: table, Action: events.ActionCreated, UserID: userID, ID: e.ID, Record: e,
		})
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:    len(result.Imported),
		Skipped:     len(result.Skipped),
		TimeEntries: respond.Values(result.Imported),
		Duplicates:  result.Skipped,
	})
}

// exportCSV streams the user's entries as CSV. Optional query parameters: from and
// to (YYYY-MM-DD, to exclusive), client_id and uninvoiced.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	filter, err := parseExportFilter(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(filter.From, filter.To)))

	if _, err := h.exportSvc.Export(r.Context(), userID, filter, w); err != nil {
		respond.Err(w, r, err, kind)
	}
}

func parseExportFilter(r *http.Request) (export.Filter, error) {
	var (
		f   export.Filter
		q   = r.URL.Query()
		err error
	)

	if v := q.Get("from"); v != "" {
		if f.From, err = time.Parse(time.DateOnly, v); err != nil {
			return f, fmt.Errorf("invalid from date %q", v)
		}
	}

	if v := q.Get("to"); v != "" {
		if f.To, err = time.Parse(time.DateOnly, v); err != nil {
			return f, fmt.Errorf("invalid to date %q", v)
		}
	}

	if v := q.Get("client_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, fmt.Errorf("invalid client_id %q", v)
		}

		f.ClientID = &id
	}

	if v := q.Get("uninvoiced"); v != "" {
		if f.Uninvoiced, err = strconv.ParseBool(v); err != nil {
			return f, fmt.Errorf("invalid uninvoiced value %q", v)
		}
	}

	return f, nil
}
