package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicely/internal/dashboard"
	"github.com/MrJamesThe3rd/invoicely/internal/http/respond"
	"github.com/MrJamesThe3rd/invoicely/internal/records"
)

type Handler struct {
	clients     records.ClientProvider
	invoices    records.InvoiceProvider
	timeEntries records.TimeEntryProvider
	now         func() time.Time
}

func NewHandler(clients records.ClientProvider, invoices records.InvoiceProvider, timeEntries records.TimeEntryProvider) *Handler {
	return &Handler{
		clients:     clients,
		invoices:    invoices,
		timeEntries: timeEntries,
		now:         time.Now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

// summary loads the caller's records into a fresh store and aggregates them.
// An optional ?tz= IANA zone sets the day boundaries for overdue, trend and today.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.User(w, r)
	if !ok {
		return
	}

	now := h.now()

	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid tz: "+tz)
			return
		}

		now = now.In(loc)
	}

	store := records.NewStore(h.clients, h.invoices, h.timeEntries)
	if err := store.Refresh(r.Context(), userID); err != nil {
		respond.Err(w, r, err, "Dashboard")
		return
	}

	snap := store.Snapshot()

	respond.JSON(w, http.StatusOK, dashboard.Summarize(snap.Clients, snap.Invoices, snap.TimeEntries, now))
}
