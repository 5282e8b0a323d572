package domain

import "fmt"

// DateLayout is the date-only ISO 8601 layout exchanged with the backend.
const DateLayout = "2006-01-02"

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (r DateRange) IsZero() bool {
	return r.StartDate == "" && r.EndDate == ""
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.StartDate, r.EndDate)
}
