package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/testutil/products"
)

func assertPlacement(t *testing.T, rec model.Recommendation, x, z, rotation float64) {
	t.Helper()
	assert.InDelta(t, x, rec.Position.X, 1e-9, "x for %s", rec.ProductName)
	assert.InDelta(t, 0, rec.Position.Y, 1e-9, "y for %s", rec.ProductName)
	assert.InDelta(t, z, rec.Position.Z, 1e-9, "z for %s", rec.ProductName)
	assert.InDelta(t, rotation, rec.Rotation, 1e-9, "rotation for %s", rec.ProductName)
	assert.Contains(t, rec.Reasoning, rec.ProductName)
}

func TestPlanner_PlaceSequential(t *testing.T) {
	items := products.NewBuilder(t).
		WithSofa("Harper Sofa", 1200).
		WithTable("Marlow Table", 450).
		WithChair("Jonah Chair", 600).
		WithStorage("Sloane Cabinet", 750).
		WithChair("Extra Chair", 300).
		Build()

	recs := NewPlanner().PlaceSequential(items, livingRoom5x4)
	require.Len(t, recs, 5)

	assertPlacement(t, recs[0], 2.5, 0.5, 0)
	assertPlacement(t, recs[1], 2.5, 4-0.6-0.5, 180)
	assertPlacement(t, recs[2], 0.5, 2, 90)
	assertPlacement(t, recs[3], 5-1.0-0.5, 2, 270)
	assertPlacement(t, recs[4], 5-0.8-0.5, 2, 270)

	assert.Equal(t, "product-1", recs[0].ProductID)
	assert.InDelta(t, 1200.0, recs[0].Price, 1e-9)
}

func TestPlanner_PlaceDetected(t *testing.T) {
	items := products.NewBuilder(t).
		WithSofa("Harper Sofa", 1200).
		WithChair("Right Chair", 300).
		WithTable("Coffee Table", 450).
		WithTable("Side Table", 200).
		WithChair("Left Chair", 300).
		WithStorage("Sloane Cabinet", 750).
		WithBed("Adams Bed", 1500).
		WithProduct(model.Product{Name: "Floor Lamp", Category: model.CategoryFurniture, Dimensions: model.Dimensions{Width: 0.3, Depth: 0.3}}).
		Build()

	recs := NewPlanner().PlaceDetected(items, livingRoom5x4)
	require.Len(t, recs, 8)

	assertPlacement(t, recs[0], 2.5, 0.5, 0)
	assertPlacement(t, recs[1], 5-0.5-0.4, 2, 270)
	assertPlacement(t, recs[2], 2.5, 2, 0)
	assertPlacement(t, recs[3], 2.5, 4.0/3, 0)
	assertPlacement(t, recs[4], 0.5+0.4, 2, 90)
	assertPlacement(t, recs[5], 0.5+0.5, 0.5+0.225, 0)
	assertPlacement(t, recs[6], 2.5, 0.5+1.0, 0)
	assertPlacement(t, recs[7], 2.5, 2, 0)
}

func TestPlanner_Deterministic(t *testing.T) {
	items := products.NewBuilder(t).WithFixture(products.FixtureLivingRoom).Build()
	planner := NewPlanner()

	assert.Equal(t, planner.PlaceSequential(items, livingRoom5x4), planner.PlaceSequential(items, livingRoom5x4))
	assert.Equal(t, planner.PlaceDetected(items, livingRoom5x4), planner.PlaceDetected(items, livingRoom5x4))
}

func TestPlanner_ZeroValueUsesDefaultOffset(t *testing.T) {
	items := products.NewBuilder(t).WithSofa("Harper Sofa", 1200).Build()
	assert.Equal(t, NewPlanner().PlaceSequential(items, livingRoom5x4), Planner{}.PlaceSequential(items, livingRoom5x4))
}

func TestPlanner_Empty(t *testing.T) {
	assert.Empty(t, NewPlanner().PlaceSequential(nil, livingRoom5x4))
	assert.Empty(t, NewPlanner().PlaceDetected(nil, livingRoom5x4))
}
