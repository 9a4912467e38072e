package model

import "time"

// CatalogDocument is the on-disk and over-the-wire form of the movie catalog.
type CatalogDocument struct {
	UpdatedAt time.Time      `json:"updated_at"`
	Movies    []CatalogEntry `json:"movies" validate:"required,min=1,dive"`
}

type CatalogEntry struct {
	Title           string   `json:"title" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"gt=0"`
	ShowTimes       []string `json:"show_times" validate:"required,min=1,dive,required"`
}
