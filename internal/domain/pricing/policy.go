package pricing

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRate     = errors.New("rate must be between 0 and 10000 basis points")
	ErrInvalidCurrency = errors.New("currency must be a three-letter code")
	ErrInvalidBulkRule = errors.New("bulk rule needs a positive minimum quantity")
)

// Policy holds the fixed rates of the house. Rates are basis points (1/100 of a percent).
type Policy struct {
	Currency        string
	TaxRateBP       int64
	ServiceChargeBP int64
	Bulk            BulkRule
	Loyalty         LoyaltyRule
}

// BulkRule applies when the committed quantity across all records reaches MinQuantity.
type BulkRule struct {
	MinQuantity int
	PercentBP   int64
}

type LoyaltyRule struct {
	PercentBP int64
}

func NewPolicy(currency string, taxBP, serviceBP int64, bulk BulkRule, loyalty LoyaltyRule) (Policy, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Policy{}, ErrInvalidCurrency
	}
	for _, bp := range []int64{taxBP, serviceBP, bulk.PercentBP, loyalty.PercentBP} {
		if bp < 0 || bp > 10000 {
			return Policy{}, ErrInvalidRate
		}
	}
	if bulk.MinQuantity <= 0 {
		return Policy{}, ErrInvalidBulkRule
	}
	return Policy{
		Currency:        currency,
		TaxRateBP:       taxBP,
		ServiceChargeBP: serviceBP,
		Bulk:            bulk,
		Loyalty:         loyalty,
	}, nil
}

func DefaultPolicy() Policy {
	return Policy{
		Currency:        "USD",
		TaxRateBP:       800,
		ServiceChargeBP: 1000,
		Bulk:            BulkRule{MinQuantity: 20, PercentBP: 1000},
		Loyalty:         LoyaltyRule{PercentBP: 500},
	}
}

type DiscountRule string

const (
	DiscountNone    DiscountRule = ""
	DiscountBulk    DiscountRule = "bulk"
	DiscountLoyalty DiscountRule = "loyalty"
)

// DiscountContext carries guest facts the records themselves do not.
type DiscountContext struct {
	LoyaltyMember bool
}
