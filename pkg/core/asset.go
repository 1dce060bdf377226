package core

import (
	"fmt"

	"github.com/nikolaydubina/fpdecimal"
)

// AssetAmount is a non-negative quantity of one asset type.
type AssetAmount struct {
	amount  fpdecimal.Decimal
	assetID string
}

// NewAssetAmount creates an AssetAmount. Negative quantities and empty asset
// identifiers are rejected.
func NewAssetAmount(amount fpdecimal.Decimal, assetID string) (AssetAmount, error) {
	if amount.LessThan(fpdecimal.Zero) {
		return AssetAmount{}, fmt.Errorf("%w: negative quantity %s", ErrInvalidAmount, amount)
	}
	if assetID == "" {
		return AssetAmount{}, fmt.Errorf("%w: empty asset id", ErrInvalidAmount)
	}
	return AssetAmount{amount: amount, assetID: assetID}, nil
}

// Amount returns the quantity.
func (a AssetAmount) Amount() fpdecimal.Decimal {
	return a.amount
}

// AssetID returns the asset type identifier.
func (a AssetAmount) AssetID() string {
	return a.assetID
}

// Add returns the sum of two amounts of the same asset type. Adding amounts
// of different asset types is an error, never a coercion.
func (a AssetAmount) Add(other AssetAmount) (AssetAmount, error) {
	if a.assetID != other.assetID {
		return AssetAmount{}, fmt.Errorf("%w: %s vs %s", ErrMismatchedAssetType, a.assetID, other.assetID)
	}
	return AssetAmount{amount: a.amount.Add(other.amount), assetID: a.assetID}, nil
}

// Sub returns the difference of two amounts of the same asset type. A result
// below zero is rejected since amounts are non-negative.
func (a AssetAmount) Sub(other AssetAmount) (AssetAmount, error) {
	if a.assetID != other.assetID {
		return AssetAmount{}, fmt.Errorf("%w: %s vs %s", ErrMismatchedAssetType, a.assetID, other.assetID)
	}
	result := a.amount.Sub(other.amount)
	if result.LessThan(fpdecimal.Zero) {
		return AssetAmount{}, fmt.Errorf("%w: %s - %s is negative", ErrInvalidAmount, a.amount, other.amount)
	}
	return AssetAmount{amount: result, assetID: a.assetID}, nil
}

// String implements fmt.Stringer interface
func (a AssetAmount) String() string {
	return fmt.Sprintf("%s %s", a.amount, a.assetID)
}

// AssetPair couples the amount an order offers (first) with the amount it
// wants in return (second). The implicit exchange rate between the two asset
// types is second/first.
type AssetPair struct {
	first  AssetAmount
	second AssetAmount
}

// NewAssetPair creates an AssetPair from the offered and requested amounts.
func NewAssetPair(first, second AssetAmount) AssetPair {
	return AssetPair{first: first, second: second}
}

// First returns the offered amount.
func (p AssetPair) First() AssetAmount {
	return p.first
}

// Second returns the requested amount.
func (p AssetPair) Second() AssetAmount {
	return p.second
}

// MarketKey returns the (base, quote) key identifying the asset-pair market
// this pair trades in.
func (p AssetPair) MarketKey() MarketKey {
	return MarketKey{Base: p.first.assetID, Quote: p.second.assetID}
}

// String implements fmt.Stringer interface
func (p AssetPair) String() string {
	return fmt.Sprintf("%s for %s", p.first, p.second)
}

// MarketKey identifies one tradeable asset-pair market.
type MarketKey struct {
	Base  string
	Quote string
}

// String implements fmt.Stringer interface
func (k MarketKey) String() string {
	return k.Base + "/" + k.Quote
}
