package inventory

import "strings"

type Kind string

const (
	KindRoom     Kind = "room"
	KindTable    Kind = "table"
	KindMenuItem Kind = "menu_item"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindRoom, KindTable, KindMenuItem:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
)

// Key identifies a unit across kinds and defines the ledger's lock order.
type Key string

func NewKey(kind Kind, id string) Key {
	return Key(string(kind) + "/" + id)
}

func (k Key) String() string {
	return string(k)
}

func (k Key) Kind() Kind {
	kind, _, _ := strings.Cut(string(k), "/")
	return Kind(kind)
}

type Class string

const (
	ClassSingle Class = "single"
	ClassDouble Class = "double"
	ClassTriple Class = "triple"
)

var classOrder = []Class{ClassSingle, ClassDouble, ClassTriple}

func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidClass
	}
	return c, nil
}

func (c Class) IsValid() bool {
	switch c {
	case ClassSingle, ClassDouble, ClassTriple:
		return true
	default:
		return false
	}
}

// Upgrade returns the next larger class, or false for the largest one.
func (c Class) Upgrade() (Class, bool) {
	for i, cl := range classOrder {
		if cl == c && i+1 < len(classOrder) {
			return classOrder[i+1], true
		}
	}
	return "", false
}

// Guests is the nominal occupancy of the class.
func (c Class) Guests() int {
	for i, cl := range classOrder {
		if cl == c {
			return i + 1
		}
	}
	return 0
}
