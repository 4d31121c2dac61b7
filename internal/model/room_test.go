package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomDimensions_ToMeters(t *testing.T) {
	tests := []struct {
		name    string
		in      RoomDimensions
		want    RoomDimensions
		wantErr bool
	}{
		{
			name: "meters unchanged",
			in:   RoomDimensions{Length: 5, Width: 4, Height: 3, Unit: UnitMeters},
			want: RoomDimensions{Length: 5, Width: 4, Height: 3, Unit: UnitMeters},
		},
		{
			name: "empty unit treated as meters",
			in:   RoomDimensions{Length: 5, Width: 4, Height: 3},
			want: RoomDimensions{Length: 5, Width: 4, Height: 3, Unit: UnitMeters},
		},
		{
			name: "centimeters",
			in:   RoomDimensions{Length: 500, Width: 400, Height: 300, Unit: UnitCentimeters},
			want: RoomDimensions{Length: 5, Width: 4, Height: 3, Unit: UnitMeters},
		},
		{
			name:    "unknown unit",
			in:      RoomDimensions{Length: 5, Width: 4, Height: 3, Unit: "cubits"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToMeters()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Length, got.Length, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
			assert.Equal(t, UnitMeters, got.Unit)
		})
	}
}

func TestRecommendationRequest_Validate(t *testing.T) {
	valid := RecommendationRequest{
		RoomType:   RoomTypeLivingRoom,
		Dimensions: RoomDimensions{Length: 5, Width: 4, Height: 3, Unit: UnitMeters},
	}
	require.NoError(t, valid.Validate())

	badRoom := valid
	badRoom.RoomType = "garage"
	assert.Error(t, badRoom.Validate())

	tooTall := valid
	tooTall.Dimensions.Height = 7
	assert.Error(t, tooTall.Validate())

	zeroWidth := valid
	zeroWidth.Dimensions.Width = 0
	assert.Error(t, zeroWidth.Validate())

	badBudget := valid
	badBudget.Budget = &Budget{Amount: 100, Currency: "DOLLARS"}
	assert.Error(t, badBudget.Validate())

	withBudget := valid
	withBudget.Budget = &Budget{Amount: 1500, Currency: "SGD"}
	require.NoError(t, withBudget.Validate())
	require.NotNil(t, withBudget.BudgetAmount())
	assert.InDelta(t, 1500.0, *withBudget.BudgetAmount(), 1e-9)
	assert.Nil(t, valid.BudgetAmount())
}
