package domain

import "github.com/shopspring/decimal"

// feeScale is the number of decimal places money amounts are rounded to.
// STX amounts have six decimal places (micro-STX).
const feeScale = 6

// SplitFee divides a price into the platform fee and the provider's net
// earning. Both sides are rounded to six decimal places with the same
// fixed-point rounding, so fee + net reproduces price exactly.
func SplitFee(price decimal.Decimal, feePercent float64) (fee, net decimal.Decimal) {
	pct := decimal.NewFromFloat(feePercent)
	fee = price.Mul(pct).Div(decimal.NewFromInt(100)).Round(feeScale)
	net = price.Sub(fee).Round(feeScale)
	return fee, net
}
