package importer

import (
	"io"

	"github.com/MrJamesThe3rd/invoicely/internal/importer/timesheet"
)

type Format string

const (
	FormatAuto     Format = "auto"
	FormatToggl    Format = "toggl"
	FormatClockify Format = "clockify"
)

type Importer interface {
	Parse(r io.Reader) ([]timesheet.Entry, error)
}
