package domain

import (
	"time"
)

// Company is the tenant: the unit of data isolation for every entity.
// Resolved by domain name, never by guessable numeric ID from the outside.
type Company struct {
	ID        int64
	Name      string
	Domain    string
	Timezone  string // IANA идентификатор, например "Europe/Moscow"
	CreatedAt time.Time
}

// Location resolves the company's IANA timezone. Falls back to fallback when
// the column is empty or unknown, so a bad row cannot break slot queries.
func (c *Company) Location(fallback *time.Location) *time.Location {
	if c.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// Specialist is a bookable staff member of a company.
type Specialist struct {
	ID        int64
	CompanyID int64
	Name      string
	Phone     string
	Role      string
}

// Service is a bookable service with a fixed duration in minutes.
type Service struct {
	ID          int64
	CompanyID   int64
	Name        string
	Price       float64
	DurationMin int
}

// Client is the person a booking is made for.
type Client struct {
	ID        int64
	CompanyID int64
	Name      string
	Phone     string
}
