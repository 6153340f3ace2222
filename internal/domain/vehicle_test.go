package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVehicleClass(t *testing.T) {
	cases := []struct {
		input string
		want  VehicleClass
	}{
		{"motorcycle", VehicleMotorcycle},
		{"Car", VehicleCar},
		{"suv", VehicleSUV},
		{"SUV/Truck", VehicleSUV},
		{"Truck", VehicleSUV},
		{"handicapped", VehicleHandicapped},
		{"Handicapped Vehicle", VehicleHandicapped},
		{" car ", VehicleCar},
	}
	for _, tc := range cases {
		got, err := ParseVehicleClass(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}

	_, err := ParseVehicleClass("bicycle")
	assert.Error(t, err)
	_, err = ParseVehicleClass("")
	assert.Error(t, err)
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC123", NormalizePlate(" ab c 123 "))
	assert.Equal(t, "WXY9876", NormalizePlate("wxy\t98 76"))
	assert.Equal(t, "ABC123", NormalizePlate("ABC123"))
	assert.Equal(t, "", NormalizePlate("   "))
}
