package core

import (
	"fmt"

	"github.com/nikolaydubina/fpdecimal"
)

// Price is a normalized exchange rate: the amount of quote asset per one unit
// of base asset. The rate is fixed-point, so equality and ordering are exact
// integer comparisons.
type Price struct {
	rate  fpdecimal.Decimal
	base  string
	quote string
}

// NewPrice creates a Price with an explicit rate and market.
func NewPrice(rate fpdecimal.Decimal, base, quote string) Price {
	return Price{rate: rate, base: base, quote: quote}
}

// NewPriceFromPair derives the price of an asset pair: rate = second/first,
// base = first asset type, quote = second asset type. A pair offering a zero
// quantity has no price.
func NewPriceFromPair(pair AssetPair) (Price, error) {
	first := pair.First()
	second := pair.Second()
	if first.Amount().Equal(fpdecimal.Zero) {
		return Price{}, fmt.Errorf("%w: zero offered quantity in %s", ErrDivisionByZero, pair)
	}
	return Price{
		rate:  second.Amount().Div(first.Amount()),
		base:  first.AssetID(),
		quote: second.AssetID(),
	}, nil
}

// Rate returns the numeric rate.
func (p Price) Rate() fpdecimal.Decimal {
	return p.rate
}

// Base returns the base asset type.
func (p Price) Base() string {
	return p.base
}

// Quote returns the quote asset type.
func (p Price) Quote() string {
	return p.quote
}

// MarketKey returns the (base, quote) key of the market this price belongs to.
func (p Price) MarketKey() MarketKey {
	return MarketKey{Base: p.base, Quote: p.quote}
}

// sameMarket rejects comparisons across different asset-pair markets.
func (p Price) sameMarket(other Price) error {
	if p.base != other.base || p.quote != other.quote {
		return fmt.Errorf("%w: %s/%s vs %s/%s", ErrMismatchedMarket, p.quote, p.base, other.quote, other.base)
	}
	return nil
}

// LessThan reports whether p is lower than other within the same market.
func (p Price) LessThan(other Price) (bool, error) {
	if err := p.sameMarket(other); err != nil {
		return false, err
	}
	return p.rate.LessThan(other.rate), nil
}

// GreaterThan reports whether p is higher than other within the same market.
func (p Price) GreaterThan(other Price) (bool, error) {
	if err := p.sameMarket(other); err != nil {
		return false, err
	}
	return p.rate.GreaterThan(other.rate), nil
}

// Equal reports exact rate equality within the same market.
func (p Price) Equal(other Price) (bool, error) {
	if err := p.sameMarket(other); err != nil {
		return false, err
	}
	return p.rate.Equal(other.rate), nil
}

// String implements fmt.Stringer interface
func (p Price) String() string {
	return fmt.Sprintf("%s %s/%s", p.rate, p.quote, p.base)
}
