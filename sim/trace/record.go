// Package trace provides decision-trace recording for pharmacy runs.
// It has no dependencies on sim/ and stores plain data types only.
package trace

import "github.com/shopspring/decimal"

// RestockRecord captures a restock request and the day it will arrive.
type RestockRecord struct {
	Drug   string
	Day    int
	DueDay int
}

// DeliveryRecord captures a restock lot placed on the shelf.
type DeliveryRecord struct {
	Drug string
	Day  int
}

// PriceRecord captures a markdown being applied or cleared.
type PriceRecord struct {
	Drug       string
	Day        int
	MarkedDown bool // true = markdown applied, false = cleared
	Price      decimal.Decimal
}

// ExpiryRecord captures a batch written off at base price.
type ExpiryRecord struct {
	Drug     string
	Day      int
	Quantity int
	Loss     decimal.Decimal
}

// OverflowRecord captures a ready order that no courier could take.
// Its stock stays withdrawn and its profit is not booked.
type OverflowRecord struct {
	OrderID string
	Day     int
	Profit  decimal.Decimal
}
