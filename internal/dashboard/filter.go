package dashboard

import (
	"strings"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/invoice"
)

// StatusAll matches every invoice status in FilterInvoices.
const StatusAll = "all"

// FilterClients keeps clients whose name, email or company contains term, ignoring case.
// An empty term keeps everything.
func FilterClients(clients []client.Client, term string) []client.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []client.Client{}

	for _, c := range clients {
		if term == "" ||
			contains(c.Name, term) ||
			(c.Email != nil && contains(*c.Email, term)) ||
			(c.Company != nil && contains(*c.Company, term)) {
			out = append(out, c)
		}
	}

	return out
}

// FilterInvoices keeps invoices whose number or client name contains term and whose
// status equals status. An empty status or StatusAll matches any status.
func FilterInvoices(invoices []invoice.Invoice, clients []client.Client, term, status string) []invoice.Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	status = strings.ToLower(strings.TrimSpace(status))
	out := []invoice.Invoice{}

	for _, inv := range invoices {
		if status != "" && status != StatusAll && string(inv.Status) != status {
			continue
		}

		if term != "" && !contains(inv.InvoiceNumber, term) && !clientMatches(clients, inv, term) {
			continue
		}

		out = append(out, inv)
	}

	return out
}

func clientMatches(clients []client.Client, inv invoice.Invoice, term string) bool {
	c, ok := FindClient(clients, inv.ClientID)
	return ok && contains(c.Name, term)
}

func contains(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
