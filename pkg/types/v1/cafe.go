package v1

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/paulmach/orb"
)

type ID int64

// SocketTier describes how easy it is to find a free power outlet.
type SocketTier string

const (
	SocketsLow    SocketTier = "low"
	SocketsMedium SocketTier = "medium"
	SocketsHigh   SocketTier = "high"
)

// CrowdLevel is a coarse occupancy label.
type CrowdLevel string

const (
	CrowdLow     CrowdLevel = "low"
	CrowdMedium  CrowdLevel = "medium"
	CrowdHigh    CrowdLevel = "high"
	CrowdUnknown CrowdLevel = "unknown"
)

// TimeOfDay is the bucket crowd levels are keyed by.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// Purpose is a tag describing what a cafe is good for (work, study, ...).
type Purpose string

const (
	PurposeWork    Purpose = "work"
	PurposeStudy   Purpose = "study"
	PurposeReading Purpose = "reading"
	PurposeMeeting Purpose = "meeting"
	PurposeHangout Purpose = "hangout"
	PurposeQuick   Purpose = "quick"
)

// DefaultPurposes is the order purpose tags are offered in.
var DefaultPurposes = []Purpose{
	PurposeWork,
	PurposeStudy,
	PurposeReading,
	PurposeMeeting,
	PurposeHangout,
	PurposeQuick,
}

type OpenHours struct {
	Open int `yaml:"open" validate:"min=0,max=23"`
	// Close of 24 means midnight
	Close int `yaml:"close" validate:"min=0,max=24"`
}

type Crowd struct {
	Morning   CrowdLevel `yaml:"morning" validate:"required,oneof=low medium high"`
	Afternoon CrowdLevel `yaml:"afternoon" validate:"required,oneof=low medium high"`
	Evening   CrowdLevel `yaml:"evening" validate:"required,oneof=low medium high"`
}

// At returns the crowd level for the given bucket.
func (c Crowd) At(t TimeOfDay) CrowdLevel {
	switch t {
	case Morning:
		return c.Morning
	case Afternoon:
		return c.Afternoon
	case Evening:
		return c.Evening
	}
	return CrowdUnknown
}

// Cafe is one static cafe record. Records are never mutated after the store
// has loaded them.
type Cafe struct {
	ID      ID      `yaml:"id" validate:"required,min=1"`
	Name    string  `yaml:"name" validate:"required"`
	Address *string `yaml:"address,omitempty" validate:""`
	City    *string `yaml:"city,omitempty" validate:""`

	Lat float64 `yaml:"lat" validate:"min=-90,max=90"`
	Lng float64 `yaml:"lng" validate:"min=-180,max=180"`

	WiFi      bool       `yaml:"wifi"`
	Sockets   SocketTier `yaml:"sockets" validate:"required,oneof=low medium high"`
	Seating   string     `yaml:"seating,omitempty" validate:""`
	AC        bool       `yaml:"ac"`
	BestFor   []Purpose  `yaml:"bestFor,flow" validate:"unique"`
	OpenHours OpenHours  `yaml:"openHours"`
	Crowd     *Crowd     `yaml:"crowd,omitempty" validate:"omitempty"`
	Rating    *float64   `yaml:"rating,omitempty" validate:"omitempty,min=0,max=5"`
}

func (c *Cafe) Validate() error {
	validate := validator.New()
	err := validate.Struct(*c)
	if err != nil {
		return fmt.Errorf("cafe %d (%s): %w", c.ID, c.Name, err)
	}
	return nil
}

// HasCharging is true when sockets are reasonably easy to find.
func (c *Cafe) HasCharging() bool {
	return c.Sockets == SocketsMedium || c.Sockets == SocketsHigh
}

func (c *Cafe) IsBestFor(p Purpose) bool {
	for _, b := range c.BestFor {
		if b == p {
			return true
		}
	}
	return false
}

// Point is the cafe position as an orb point (lng, lat).
func (c *Cafe) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

func (c *Cafe) AddressText() string { return deref(c.Address) }
func (c *Cafe) CityText() string    { return deref(c.City) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
