package filter

import (
	"strings"

	"github.com/byxorna/cafes/pkg/types/v1"
)

// Amenity names one of the independent toggles.
type Amenity string

const (
	AmenityWiFi    Amenity = "wifi"
	AmenityAC      Amenity = "ac"
	AmenitySockets Amenity = "sockets"
)

// SelectPurpose behaves like a row of radio buttons that can be switched off:
// picking the active purpose clears it, picking another replaces it.
func (s State) SelectPurpose(p v1.Purpose) State {
	if s.SelectedPurpose == p {
		s.SelectedPurpose = ""
		return s
	}
	s.SelectedPurpose = p
	return s
}

// SetAmenity sets one toggle. Unknown amenities leave the state unchanged.
func (s State) SetAmenity(a Amenity, on bool) State {
	switch a {
	case AmenityWiFi:
		s.Amenities.WiFi = on
	case AmenityAC:
		s.Amenities.AC = on
	case AmenitySockets:
		s.Amenities.Sockets = on
	}
	return s
}

// Amenity reports the current value of a toggle.
func (s State) Amenity(a Amenity) bool {
	switch a {
	case AmenityWiFi:
		return s.Amenities.WiFi
	case AmenityAC:
		return s.Amenities.AC
	case AmenitySockets:
		return s.Amenities.Sockets
	}
	return false
}

func (s State) SetSearch(q string) State {
	s.SearchQuery = q
	return s
}

// Reset clears every criterion at once.
func (s State) Reset() State {
	return State{}
}

// HasActiveFilters decides whether a reset is worth offering.
func (s State) HasActiveFilters() bool {
	return strings.TrimSpace(s.SearchQuery) != "" ||
		s.SelectedPurpose != "" ||
		s.Amenities.WiFi ||
		s.Amenities.AC ||
		s.Amenities.Sockets
}
