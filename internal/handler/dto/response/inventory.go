package response

import (
	"hotel-concierge/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID               string `json:"id"`
	Floor            int    `json:"floor"`
	Class            string `json:"class"`
	NightlyRateMinor int64  `json:"nightly_rate_minor"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
}

type TableResponse struct {
	ID              string `json:"id"`
	Capacity        int    `json:"capacity"`
	Location        string `json:"location"`
	BookingFeeMinor int64  `json:"booking_fee_minor"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
}

type MenuItemResponse struct {
	Key            string           `json:"key"`
	Name           string           `json:"name"`
	Aliases        []string         `json:"aliases,omitempty"`
	PriceMinor     int64            `json:"price_minor"`
	Currency       string           `json:"currency"`
	Customizations map[string]int64 `json:"customizations,omitempty"`
	Available      bool             `json:"available"`
	Portions       *int             `json:"portions,omitempty"`
}

func FromRoomViews(views []*queries.RoomView) ([]RoomResponse, error) {
	return copyAll[RoomResponse](views)
}

func FromTableViews(views []*queries.TableView) ([]TableResponse, error) {
	return copyAll[TableResponse](views)
}

func FromMenuViews(views []*queries.MenuItemView) ([]MenuItemResponse, error) {
	return copyAll[MenuItemResponse](views)
}

// field names match between views and responses
func copyAll[T any, V any](views []*V) ([]T, error) {
	out := make([]T, len(views))
	for i, v := range views {
		if err := copier.CopyWithOption(&out[i], v, copier.Option{DeepCopy: true}); err != nil {
			return nil, err
		}
	}
	return out, nil
}
