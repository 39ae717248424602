package model

// SortOrder selects how the task listing is ordered.
type SortOrder string

const (
	SortDateAsc   SortOrder = "date-asc"
	SortDateDesc  SortOrder = "date-desc"
	SortTitleAsc  SortOrder = "title-asc"
	SortTitleDesc SortOrder = "title-desc"
	SortPriority  SortOrder = "priority"
	// SortDefault lists the most recently created tasks first.
	SortDefault SortOrder = "default"
)

// SortOrders is the cycle used by the sort toggle in the TUI.
var SortOrders = []SortOrder{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortPriority, SortDefault}

// ParseSortOrder maps a user-supplied string to a SortOrder.
// Unrecognised values fall back to SortDefault.
func ParseSortOrder(s string) SortOrder {
	for _, o := range SortOrders {
		if string(o) == s {
			return o
		}
	}
	return SortDefault
}

// Next returns the order after o in SortOrders.
func (o SortOrder) Next() SortOrder {
	for i, q := range SortOrders {
		if q == o {
			return SortOrders[(i+1)%len(SortOrders)]
		}
	}
	return SortOrders[0]
}

func (o SortOrder) Label() string {
	switch o {
	case SortDateAsc:
		return "date ↑"
	case SortDateDesc:
		return "date ↓"
	case SortTitleAsc:
		return "title A-Z"
	case SortTitleDesc:
		return "title Z-A"
	case SortPriority:
		return "priority"
	}
	return "newest"
}

// Severity is the category of a user notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)
