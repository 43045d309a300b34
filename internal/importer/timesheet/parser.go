package timesheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/invoicely/internal/encoding"
	"github.com/MrJamesThe3rd/invoicely/internal/timeentry"
)

// NoProject names entries exported without a project.
const NoProject = "No project"

// Entry is one parsed export row. Client is the tracker's client name, resolved
// against the user's clients by the caller.
type Entry struct {
	Params timeentry.CreateParams
	Client string
}

// Parser reads time tracker CSV exports and produces time entry params.
// It auto-detects the tracker by matching column headers against known profiles.
type Parser struct {
	loc      *time.Location
	profiles []Profile
}

// NewParser restricts detection to the named profiles; none means all of them.
// Unknown names are ignored.
func NewParser(loc *time.Location, names ...string) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	p := &Parser{loc: loc, profiles: profiles}

	if len(names) > 0 {
		p.profiles = nil

		for _, name := range names {
			if prof, ok := lookupProfile(name); ok {
				p.profiles = append(p.profiles, prof)
			}
		}
	}

	return p
}

var delimiters = []rune{',', ';'}

func (p *Parser) Parse(r io.Reader) ([]Entry, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, colMap, headerIdx := detectProfile(p.profiles, rows)
		if profile == nil {
			continue
		}

		slog.Debug("detected time export", "profile", profile.Name, "charset", charset, "rows", len(rows)-headerIdx-1)

		return p.parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
	}

	names := make([]string, len(p.profiles))
	for i, prof := range p.profiles {
		names[i] = prof.Name
	}

	return nil, fmt.Errorf("no matching export format found: expected columns for %s", strings.Join(names, " or "))
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// prefixed returns the index of the first column whose name starts with prefix.
func (c colIndex) prefixed(prefix string) int {
	best := -1

	for name, i := range c {
		if strings.HasPrefix(name, prefix) && (best == -1 || i < best) {
			best = i
		}
	}

	return best
}

// index returns the column's index, or -1 when the export lacks it.
func (c colIndex) index(name string) int {
	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(candidates []Profile, rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts entries from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file (for error messages).
func (p *Parser) parseRows(prof *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Entry, error) {
	var (
		projectIdx   = cols.index(prof.ProjectCol)
		clientIdx    = cols.index(prof.ClientCol)
		descIdx      = cols.index(prof.DescCol)
		billableIdx  = cols.index(prof.BillableCol)
		startDateIdx = cols.index(prof.StartDateCol)
		startTimeIdx = cols.index(prof.StartTimeCol)
		endDateIdx   = cols.index(prof.EndDateCol)
		endTimeIdx   = cols.index(prof.EndTimeCol)
		durationIdx  = cols.index(prof.DurationCol)
		rateIdx      = cols.prefixed(prof.RatePrefix)
	)

	var entries []Entry

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		if blank(row) {
			continue
		}

		start, err := p.parseDateTime(prof, cellValue(row, startDateIdx), cellValue(row, startTimeIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: start: %w", rowNum, err)
		}

		minutes, err := parseDuration(cellValue(row, durationIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params := timeentry.CreateParams{
			ProjectName: cellValue(row, projectIdx),
			Description: cellValue(row, descIdx),
			StartTime:   start,
			Duration:    minutes,
			IsBillable:  parseBillable(cellValue(row, billableIdx)),
		}

		if params.ProjectName == "" {
			params.ProjectName = NoProject
		}

		if d, t := cellValue(row, endDateIdx), cellValue(row, endTimeIdx); d != "" && t != "" {
			end, err := p.parseDateTime(prof, d, t)
			if err != nil {
				return nil, fmt.Errorf("row %d: end: %w", rowNum, err)
			}

			params.EndTime = &end
		}

		if s := cellValue(row, rateIdx); s != "" {
			value, err := parseDecimal(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s %q", rowNum, strings.ToLower(prof.RatePrefix), s)
			}

			params.HourlyRate = hourlyRate(prof.RateMode, value, minutes)
		}

		entries = append(entries, Entry{
			Params: params,
			Client: cellValue(row, clientIdx),
		})
	}

	return entries, nil
}

func (p *Parser) parseDateTime(prof *Profile, date, clock string) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, errors.New("missing date or time")
	}

	for _, dl := range prof.DateLayouts {
		for _, tl := range timeLayouts {
			if t, err := time.ParseInLocation(dl+" "+tl, date+" "+clock, p.loc); err == nil {
				return t.UTC(), nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date/time %q %q", date, clock)
}

// parseBillable maps Yes/No cells; anything else is left to the default.
func parseBillable(s string) *bool {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return new(true)
	case "no", "false", "0":
		return new(false)
	}

	return nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
