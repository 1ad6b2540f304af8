package errs

// Business outcome taxonomy shared by the ledger, pricing, specialists and dispatcher
var (
	// Ledger errors
	ErrResourceUnavailable = New("resource unavailable")
	ErrNotFound            = New("reservation not found")

	// Menu errors
	ErrItemNotFound = New("menu item not found")

	// Pricing errors
	ErrInvalidRecordSet = New("invalid record set")

	// Classifier errors
	ErrClassificationUnavailable = New("classification unavailable")
	ErrUnclassifiable            = New("request could not be classified")

	// Validation errors
	ErrInvalidIntent = New("invalid intent")
)

// Code maps a taxonomy error to the stable code used in composite results.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrResourceUnavailable):
		return "RESOURCE_UNAVAILABLE"
	case Is(err, ErrNotFound):
		return "NOT_FOUND"
	case Is(err, ErrItemNotFound):
		return "ITEM_NOT_FOUND"
	case Is(err, ErrInvalidRecordSet):
		return "INVALID_RECORD_SET"
	case Is(err, ErrClassificationUnavailable):
		return "CLASSIFICATION_UNAVAILABLE"
	case Is(err, ErrUnclassifiable):
		return "UNCLASSIFIABLE"
	case Is(err, ErrInvalidIntent):
		return "INVALID_INTENT"
	case Is(err, ErrCanceled):
		return "CANCELED"
	default:
		return "INTERNAL"
	}
}
