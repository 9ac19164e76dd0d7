package models

// Requests for chart HTTP endpoints. Defined in domain for consistency and reuse.

type ChartRequest struct {
	Date      string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Sidereal  bool   `query:"sidereal" json:"sidereal"`
	Interpret bool   `query:"interpret" json:"interpret"`
	// Coordinates are accepted for API compatibility; positions are geocentric,
	// so they do not affect the result.
	Lat float64 `query:"lat" json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon float64 `query:"lon" json:"lon" validate:"omitempty,min=-180,max=180"`
}

type MoonRequest struct {
	Date string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type AspectsRequest struct {
	Date     string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Sidereal bool   `query:"sidereal" json:"sidereal"`
}

type ArchiveRequest struct {
	From string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
}
