package domain

import "time"

// Default admission policy values
const (
	DefaultCapacityPerDate  = 10
	DefaultMinLeadDays      = 14
	DefaultMaxHorizonMonths = 3

	DefaultSuppressionInterval = 30 * time.Second
	DefaultRetentionInterval   = 5 * time.Minute
)

// Business validation constants
const (
	MaxNameLength     = 200
	MaxEmailLength    = 254
	MaxPhoneLength    = 32
	MaxRegLength      = 16
	MaxCarNeedsLength = 2000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
