package recommend

import (
	"fmt"

	"github.com/Veraticus/roomcraft/internal/model"
)

// DefaultWallOffset is the clearance kept between furniture and walls, in meters.
const DefaultWallOffset = 0.5

// Planner assigns positions and rotations to selected products. It is a
// fixed rule table; it does not check for collisions.
type Planner struct {
	WallOffset float64
}

// NewPlanner returns a planner with the default wall clearance.
func NewPlanner() Planner {
	return Planner{WallOffset: DefaultWallOffset}
}

func (pl Planner) offset() float64 {
	if pl.WallOffset <= 0 {
		return DefaultWallOffset
	}
	return pl.WallOffset
}

// PlaceSequential places products by their index in the list: focal wall,
// opposite wall, left side, then right side for everything else.
func (pl Planner) PlaceSequential(products []model.Product, room model.RoomDimensions) []model.Recommendation {
	off := pl.offset()
	recs := make([]model.Recommendation, 0, len(products))

	for i, p := range products {
		var (
			pos       model.Position
			rotation  float64
			reasoning string
		)
		switch i {
		case 0:
			pos = model.Position{X: room.Length / 2, Z: off}
			reasoning = fmt.Sprintf("Placed %s against the back wall as the focal point", p.Name)
		case 1:
			pos = model.Position{X: room.Length / 2, Z: room.Width - p.Dimensions.Depth - off}
			rotation = 180
			reasoning = fmt.Sprintf("Placed %s opposite the main furniture", p.Name)
		case 2:
			pos = model.Position{X: off, Z: room.Width / 2}
			rotation = 90
			reasoning = fmt.Sprintf("Placed %s on the left side for balance", p.Name)
		default:
			pos = model.Position{X: room.Length - p.Dimensions.Width - off, Z: room.Width / 2}
			rotation = 270
			reasoning = fmt.Sprintf("Placed %s on the right side to complete the layout", p.Name)
		}
		recs = append(recs, newRecommendation(p, pos, rotation, reasoning))
	}

	return recs
}

// PlaceDetected places one product per detected category. Position depends
// on the category; chairs alternate sides by placement index and only the
// first table goes in the center.
func (pl Planner) PlaceDetected(products []model.Product, room model.RoomDimensions) []model.Recommendation {
	off := pl.offset()
	recs := make([]model.Recommendation, 0, len(products))
	tablesPlaced := 0

	for i, p := range products {
		w, d := p.Dimensions.Width, p.Dimensions.Depth
		var (
			pos       model.Position
			rotation  float64
			reasoning string
		)
		switch p.Category {
		case model.CategorySofa:
			pos = model.Position{X: room.Length / 2, Z: off}
			reasoning = fmt.Sprintf("Placed %s against the main wall to anchor the seating area", p.Name)
		case model.CategoryTable:
			if tablesPlaced == 0 {
				pos = model.Position{X: room.Length / 2, Z: room.Width / 2}
				reasoning = fmt.Sprintf("Placed %s in the center of the room", p.Name)
			} else {
				pos = model.Position{X: room.Length / 2, Z: room.Width / 3}
				reasoning = fmt.Sprintf("Placed %s in front of the seating", p.Name)
			}
			tablesPlaced++
		case model.CategoryChair:
			if i%2 == 0 {
				pos = model.Position{X: off + w/2, Z: room.Width / 2}
				rotation = 90
				reasoning = fmt.Sprintf("Placed %s on the left side facing the room", p.Name)
			} else {
				pos = model.Position{X: room.Length - off - w/2, Z: room.Width / 2}
				rotation = 270
				reasoning = fmt.Sprintf("Placed %s on the right side facing the room", p.Name)
			}
		case model.CategoryStorage:
			pos = model.Position{X: off + w/2, Z: off + d/2}
			reasoning = fmt.Sprintf("Placed %s in the corner along the wall", p.Name)
		case model.CategoryBed:
			pos = model.Position{X: room.Length / 2, Z: off + d/2}
			reasoning = fmt.Sprintf("Placed %s with its headboard against the main wall", p.Name)
		default:
			pos = model.Position{X: room.Length / 2, Z: room.Width / 2}
			reasoning = fmt.Sprintf("Placed %s in the center of the room", p.Name)
		}
		recs = append(recs, newRecommendation(p, pos, rotation, reasoning))
	}

	return recs
}

func newRecommendation(p model.Product, pos model.Position, rotation float64, reasoning string) model.Recommendation {
	return model.Recommendation{
		ProductID:   p.ID,
		ProductName: p.Name,
		Position:    pos,
		Rotation:    rotation,
		Reasoning:   reasoning,
		Price:       p.Price,
	}
}
