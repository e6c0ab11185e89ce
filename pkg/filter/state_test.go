package filter

import (
	"testing"

	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/stretchr/testify/assert"
)

func TestSelectPurposeToggles(t *testing.T) {
	s := State{}

	s = s.SelectPurpose(v1.PurposeStudy)
	assert.Equal(t, v1.PurposeStudy, s.SelectedPurpose)

	s = s.SelectPurpose(v1.PurposeStudy)
	assert.Equal(t, v1.Purpose(""), s.SelectedPurpose, "selecting the active tag clears it")

	s = s.SelectPurpose(v1.PurposeStudy).SelectPurpose(v1.PurposeMeeting)
	assert.Equal(t, v1.PurposeMeeting, s.SelectedPurpose, "a different tag replaces the selection")
}

func TestSetAmenity(t *testing.T) {
	s := State{}.
		SetAmenity(AmenityWiFi, true).
		SetAmenity(AmenitySockets, true)

	assert.Equal(t, Amenities{WiFi: true, Sockets: true}, s.Amenities)
	assert.True(t, s.Amenity(AmenityWiFi))
	assert.False(t, s.Amenity(AmenityAC))

	s = s.SetAmenity(AmenityWiFi, false)
	assert.Equal(t, Amenities{Sockets: true}, s.Amenities)

	unchanged := s.SetAmenity(Amenity("parking"), true)
	assert.Equal(t, s, unchanged)
	assert.False(t, s.Amenity(Amenity("parking")))
}

func TestTransitionsDoNotAlias(t *testing.T) {
	before := State{SearchQuery: "brew"}
	after := before.SetSearch("nook").SetAmenity(AmenityAC, true)

	assert.Equal(t, "brew", before.SearchQuery)
	assert.False(t, before.Amenities.AC)
	assert.Equal(t, "nook", after.SearchQuery)
}

func TestHasActiveFilters(t *testing.T) {
	testcases := map[string]struct {
		state    State
		expected bool
	}{
		"zero":                {State{}, false},
		"blank search":        {State{SearchQuery: " \t "}, false},
		"search":              {State{SearchQuery: "nook"}, true},
		"purpose":             {State{SelectedPurpose: v1.PurposeQuick}, true},
		"wifi":                {State{Amenities: Amenities{WiFi: true}}, true},
		"ac":                  {State{Amenities: Amenities{AC: true}}, true},
		"sockets":             {State{Amenities: Amenities{Sockets: true}}, true},
		"purpose toggled off": {State{}.SelectPurpose(v1.PurposeWork).SelectPurpose(v1.PurposeWork), false},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.state.HasActiveFilters())
		})
	}
}

func TestResetRestoresIdentity(t *testing.T) {
	all := records(t)
	dirty := State{
		SearchQuery:     "zzz-no-match",
		SelectedPurpose: v1.PurposeMeeting,
		Amenities:       Amenities{WiFi: true, AC: true, Sockets: true},
	}
	assert.Equal(t, 0, Apply(all, dirty).Count)

	clean := dirty.Reset()
	assert.Equal(t, State{}, clean)
	assert.False(t, clean.HasActiveFilters())
	assert.Equal(t, ids(all), ids(Filter(all, clean)))
}
