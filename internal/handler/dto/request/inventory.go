package request

import (
	"hotel-concierge/internal/domain/inventory"
	"hotel-concierge/internal/usecase/queries"
)

type ListRoomsQuery struct {
	Class     string `form:"class" binding:"omitempty,oneof=single double triple"`
	Floor     *int   `form:"floor"`
	Available bool   `form:"available"`
}

func (q ListRoomsQuery) ToFilter() queries.RoomFilter {
	return queries.RoomFilter{
		Class:         inventory.Class(q.Class),
		Floor:         q.Floor,
		OnlyAvailable: q.Available,
	}
}

type ListTablesQuery struct {
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1"`
	Location    string `form:"location" binding:"omitempty,max=32"`
	Available   bool   `form:"available"`
}

func (q ListTablesQuery) ToFilter() queries.TableFilter {
	return queries.TableFilter{
		MinCapacity:   q.MinCapacity,
		Location:      q.Location,
		OnlyAvailable: q.Available,
	}
}

type ListMenuQuery struct {
	Available bool `form:"available"`
}
