package model

import (
	"fmt"
)

// RoomType identifies the kind of room being furnished.
type RoomType string

// Supported room types.
const (
	RoomTypeLivingRoom RoomType = "living_room"
	RoomTypeBedroom    RoomType = "bedroom"
	RoomTypeDiningRoom RoomType = "dining_room"
	RoomTypeHomeOffice RoomType = "home_office"
)

// RoomTypes lists every supported room type.
var RoomTypes = []RoomType{
	RoomTypeLivingRoom,
	RoomTypeBedroom,
	RoomTypeDiningRoom,
	RoomTypeHomeOffice,
}

// IsValid reports whether the room type is supported.
func (r RoomType) IsValid() bool {
	for _, rt := range RoomTypes {
		if r == rt {
			return true
		}
	}
	return false
}

// DimensionUnit is the unit a room was measured in.
type DimensionUnit string

// Supported measurement units.
const (
	UnitMeters      DimensionUnit = "meters"
	UnitFeet        DimensionUnit = "feet"
	UnitCentimeters DimensionUnit = "centimeters"
	UnitInches      DimensionUnit = "inches"
)

// metersPer converts one unit into meters.
var metersPer = map[DimensionUnit]float64{
	UnitMeters:      1,
	UnitFeet:        0.3048,
	UnitCentimeters: 0.01,
	UnitInches:      0.0254,
}

// Room size ceilings in meters.
const (
	MaxRoomSpan   = 50.0
	MaxRoomHeight = 6.0
)

// RoomDimensions describes the room interior.
type RoomDimensions struct {
	Unit   DimensionUnit `json:"unit"`
	Length float64       `json:"length"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
}

// ToMeters returns the dimensions converted into meters. An empty unit is
// treated as meters.
func (d RoomDimensions) ToMeters() (RoomDimensions, error) {
	unit := d.Unit
	if unit == "" {
		unit = UnitMeters
	}
	factor, ok := metersPer[unit]
	if !ok {
		return RoomDimensions{}, fmt.Errorf("unsupported dimension unit %q", d.Unit)
	}
	return RoomDimensions{
		Length: d.Length * factor,
		Width:  d.Width * factor,
		Height: d.Height * factor,
		Unit:   UnitMeters,
	}, nil
}

// Validate checks that all dimensions are positive and within bounds.
// Bounds are checked in meters.
func (d RoomDimensions) Validate() error {
	if d.Length <= 0 || d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("room dimensions must be positive (got %gx%gx%g)", d.Length, d.Width, d.Height)
	}
	m, err := d.ToMeters()
	if err != nil {
		return err
	}
	if m.Length > MaxRoomSpan || m.Width > MaxRoomSpan {
		return fmt.Errorf("room length and width must not exceed %gm", MaxRoomSpan)
	}
	if m.Height > MaxRoomHeight {
		return fmt.Errorf("room height must not exceed %gm", MaxRoomHeight)
	}
	return nil
}

// Area returns the floor area.
func (d RoomDimensions) Area() float64 {
	return d.Length * d.Width
}

// Position is a point in room space. X runs along the length, Z along the
// width and Y is height above the floor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Budget is an optional spending ceiling.
type Budget struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Validate checks the budget amount and currency code.
func (b Budget) Validate() error {
	if b.Amount <= 0 {
		return fmt.Errorf("budget amount must be positive")
	}
	if len(b.Currency) != 3 {
		return fmt.Errorf("budget currency must be a 3-letter code")
	}
	return nil
}
