package models

import (
	"time"
)

type MemberCard struct {
	ID            string    `json:"id"`
	SerialNumber  int       `json:"serial_number"`
	PersonID      string    `json:"person_id"`
	ApplePassURL  string    `json:"apple_pass_url"`
	GooglePassURL string    `json:"google_pass_url"`
	Created       time.Time `json:"created"`
	LastUpdated   time.Time `json:"last_updated"`
}
