package entities

// ConsultationTime holds one consultation instant and its business-timezone projections.
// UTC is authoritative; Display, Date and Time must describe the same instant.
// Resolved is false when the values are raw strings that could not be parsed.
type ConsultationTime struct {
	UTC      string
	Display  string
	Date     string
	Time     string
	Resolved bool
}

// IsZero reports whether no field is set.
func (c ConsultationTime) IsZero() bool {
	return c.UTC == "" && c.Display == "" && c.Date == "" && c.Time == ""
}
