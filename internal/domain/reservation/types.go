package reservation

type Kind string

const (
	KindRoomBooking  Kind = "room_booking"
	KindTableBooking Kind = "table_booking"
	KindFoodOrder    Kind = "food_order"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindRoomBooking, KindTableBooking, KindFoodOrder:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusCommitted Status = "committed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCommitted, StatusCancelled:
		return true
	default:
		return false
	}
}
