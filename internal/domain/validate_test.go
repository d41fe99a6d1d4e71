package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSeat_WithinBounds(t *testing.T) {
	bounds := SeatBounds{Rows: 5, SeatsInRow: 6}

	for row := 1; row <= 5; row++ {
		for seat := 1; seat <= 6; seat++ {
			assert.NoError(t, ValidateSeat(row, seat, bounds))
		}
	}
}

func TestValidateSeat_OutOfBounds(t *testing.T) {
	bounds := SeatBounds{Rows: 5, SeatsInRow: 6}

	cases := []struct {
		name  string
		row   int
		seat  int
		field string
	}{
		{"row zero", 0, 1, "row"},
		{"row past last", 6, 1, "row"},
		{"row far past last", 10, 1, "row"},
		{"seat zero", 1, 0, "seat"},
		{"seat past last", 1, 7, "seat"},
		{"both invalid reports row first", 0, 0, "row"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSeat(tc.row, tc.seat, bounds)
			assert.Error(t, err)

			ve, ok := err.(*ValidationError)
			assert.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestRoute_Validate(t *testing.T) {
	route := &Route{SourceID: 1, DestinationID: 2, Distance: 500}
	assert.NoError(t, route.Validate())

	same := &Route{SourceID: 1, DestinationID: 1, Distance: 500}
	err := same.Validate()
	assert.Error(t, err)
	assert.True(t, IsValidation(err))

	missing := &Route{DestinationID: 2, Distance: 500}
	assert.Error(t, missing.Validate())

	zeroDistance := &Route{SourceID: 1, DestinationID: 2, Distance: 0}
	assert.Error(t, zeroDistance.Validate())
}

func TestFlight_Validate(t *testing.T) {
	departure := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	flight := &Flight{
		RouteID:       1,
		AirplaneID:    1,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
	}
	assert.NoError(t, flight.Validate())

	flight.ArrivalTime = departure
	assert.Error(t, flight.Validate(), "equal departure and arrival must fail")

	flight.ArrivalTime = departure.Add(-time.Hour)
	assert.Error(t, flight.Validate())
}

func TestAirplane_CapacityAndValidate(t *testing.T) {
	plane := &Airplane{Name: "AN-24", Rows: 5, SeatsInRow: 6, AirplaneTypeID: 1}
	assert.NoError(t, plane.Validate())
	assert.Equal(t, 30, plane.Capacity())

	plane.Rows = 0
	assert.Error(t, plane.Validate())
}
