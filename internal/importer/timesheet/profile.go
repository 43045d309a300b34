package timesheet

// rateMode determines how the hourly rate is read from a row.
type rateMode int

const (
	// rateColumn means the export carries the hourly rate itself.
	rateColumn rateMode = iota
	// rateFromAmount means only the billed amount is exported; rate = amount / hours.
	rateFromAmount
)

const (
	ProfileToggl    = "toggl"
	ProfileClockify = "clockify"
)

// Profile describes the column layout of a time tracker's CSV export.
// Adding a new tracker is just adding a new Profile to the profiles slice.
type Profile struct {
	Name         string
	ProjectCol   string
	ClientCol    string
	DescCol      string
	BillableCol  string
	StartDateCol string
	StartTimeCol string
	EndDateCol   string
	EndTimeCol   string
	DurationCol  string
	RateMode     rateMode
	// RatePrefix matches the rate or amount column, whose name carries the currency,
	// e.g. "Billable Rate (USD)".
	RatePrefix  string
	DateLayouts []string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.ProjectCol, p.StartDateCol, p.StartTimeCol, p.DurationCol}
}

// profiles is the ordered list of export formats to try during auto-detection.
var profiles = []Profile{
	{
		Name:         ProfileClockify,
		ProjectCol:   "Project",
		ClientCol:    "Client",
		DescCol:      "Description",
		BillableCol:  "Billable",
		StartDateCol: "Start Date",
		StartTimeCol: "Start Time",
		EndDateCol:   "End Date",
		EndTimeCol:   "End Time",
		DurationCol:  "Duration (h)",
		RateMode:     rateColumn,
		RatePrefix:   "Billable Rate",
		DateLayouts:  []string{"01/02/2006", "2006-01-02", "02.01.2006"},
	},
	{
		Name:         ProfileToggl,
		ProjectCol:   "Project",
		ClientCol:    "Client",
		DescCol:      "Description",
		BillableCol:  "Billable",
		StartDateCol: "Start date",
		StartTimeCol: "Start time",
		EndDateCol:   "End date",
		EndTimeCol:   "End time",
		DurationCol:  "Duration",
		RateMode:     rateFromAmount,
		RatePrefix:   "Amount",
		DateLayouts:  []string{"2006-01-02", "01/02/2006"},
	},
}

var timeLayouts = []string{"15:04:05", "15:04", "03:04:05 PM", "03:04 PM", "3:04:05 PM", "3:04 PM"}

func lookupProfile(name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}

	return Profile{}, false
}
