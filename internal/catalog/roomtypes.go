package catalog

import "github.com/Veraticus/roomcraft/internal/model"

// roomTypePriorities lists, per room type, the categories to furnish first.
var roomTypePriorities = map[model.RoomType][]model.Category{
	model.RoomTypeLivingRoom: {model.CategorySofa, model.CategoryTable, model.CategoryChair, model.CategoryStorage},
	model.RoomTypeBedroom:    {model.CategoryBed, model.CategoryStorage, model.CategoryChair, model.CategoryTable},
	model.RoomTypeDiningRoom: {model.CategoryTable, model.CategoryChair, model.CategoryStorage},
	model.RoomTypeHomeOffice: {model.CategoryDesk, model.CategoryChair, model.CategoryStorage},
}

// RoomTypePriorities returns the ordered category keys for a room type, or
// nil for an unknown room type.
func RoomTypePriorities(roomType model.RoomType) []model.Category {
	priorities, ok := roomTypePriorities[roomType]
	if !ok {
		return nil
	}
	out := make([]model.Category, len(priorities))
	copy(out, priorities)
	return out
}

// CategoriesByRoomType returns the room type's priority list with display
// names. Unknown room types yield an empty list.
func (c *Catalog) CategoriesByRoomType(roomType model.RoomType) []model.CategoryPriority {
	priorities := RoomTypePriorities(roomType)
	out := make([]model.CategoryPriority, 0, len(priorities))
	for i, cat := range priorities {
		out = append(out, model.CategoryPriority{
			ID:       cat,
			Name:     DisplayName(cat),
			Priority: i + 1,
		})
	}
	return out
}
