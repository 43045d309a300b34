package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/invoicely/internal/client"
	"github.com/MrJamesThe3rd/invoicely/internal/importer/timesheet"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

type Service struct {
	importers map[Format]Importer
}

// NewService reads wall-clock times in exports as loc; nil means UTC.
func NewService(loc *time.Location) *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatAuto:     timesheet.NewParser(loc),
			FormatToggl:    timesheet.NewParser(loc, timesheet.ProfileToggl),
			FormatClockify: timesheet.NewParser(loc, timesheet.ProfileClockify),
		},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]timesheet.Entry, error) {
	if format == "" {
		format = FormatAuto
	}

	importer, ok := s.importers[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// Resolve turns parsed entries into create params, linking each to the client
// whose name matches case-insensitively. Entries without a rate of their own
// take the client's hourly rate.
func Resolve(entries []timesheet.Entry, clients []client.Client) []timeentry.CreateParams {
	byName := make(map[string]client.Client, len(clients))
	for _, c := range clients {
		byName[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}

	params := make([]timeentry.CreateParams, 0, len(entries))

	for _, e := range entries {
		p := e.Params

		name := strings.ToLower(strings.TrimSpace(e.Client))

		if c, ok := byName[name]; ok && name != "" {
			p.ClientID = new(c.ID)

			if p.HourlyRate == 0 {
				p.HourlyRate = c.HourlyRate
			}
		}

		params = append(params, p)
	}

	return params
}
