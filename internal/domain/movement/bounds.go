package movement

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Bucket boundaries of the normalized return |z|, shared by Classify and
// Bounds. Each bucket is half-open [lo, hi); the sharply bucket is unbounded
// above.
var (
	thresholdSharply    = decimal.NewFromFloat(2.00)
	thresholdStrongly   = decimal.NewFromFloat(1.00)
	thresholdModerately = decimal.NewFromFloat(0.50)
	thresholdModestly   = decimal.NewFromFloat(0.25)
	thresholdSlightly   = decimal.NewFromFloat(0.10)
)

// tradingDaysPerYear is the annualization convention used to de-annualize
// the implied volatility over the prediction horizon.
const tradingDaysPerYear = 252

// Normalize converts a simple return over horizonDays trading days into a
// volatility-normalized z value: z = ret / (impliedVol * sqrt(h/252)).
// impliedVol is the annualized ATM implied volatility.
func Normalize(ret, impliedVol decimal.Decimal, horizonDays int) (decimal.Decimal, error) {
	if horizonDays <= 0 {
		return decimal.Zero, fmt.Errorf("horizon must be positive, got %d days", horizonDays)
	}
	if impliedVol.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("implied volatility must be positive, got %s", impliedVol)
	}

	scale := decimal.NewFromFloat(math.Sqrt(float64(horizonDays) / tradingDaysPerYear))
	return ret.Div(impliedVol.Mul(scale)), nil
}

// Classify maps a normalized return z onto its movement category. A value
// exactly on a boundary belongs to the upper bucket; z = 0 counts as a
// non-negative edge move.
func Classify(z decimal.Decimal) Category {
	abs := z.Abs()
	up := z.Sign() >= 0

	switch {
	case abs.GreaterThanOrEqual(thresholdSharply):
		return pick(up, GainsSharply, DeclinesSharply)
	case abs.GreaterThanOrEqual(thresholdStrongly):
		return pick(up, GainsStrongly, DeclinesStrongly)
	case abs.GreaterThanOrEqual(thresholdModerately):
		return pick(up, GainsModerately, DeclinesModerately)
	case abs.GreaterThanOrEqual(thresholdModestly):
		return pick(up, GainsModestly, DeclinesModestly)
	case abs.GreaterThanOrEqual(thresholdSlightly):
		return pick(up, GainsSlightly, DeclinesSlightly)
	default:
		return pick(up, EdgesUpSlightly, EdgesDownSlightly)
	}
}

// Bounds returns the |z| interval [lo, hi) owned by the category. For the
// sharply categories hi is meaningless and unbounded is true.
func Bounds(c Category) (lo, hi decimal.Decimal, unbounded bool) {
	switch c.Keyword() {
	case "sharply":
		return thresholdSharply, decimal.Zero, true
	case "strongly":
		return thresholdStrongly, thresholdSharply, false
	case "moderately":
		return thresholdModerately, thresholdStrongly, false
	case "modestly":
		return thresholdModestly, thresholdModerately, false
	default:
		switch c.Direction() {
		case DirectionStable:
			return decimal.Zero, thresholdSlightly, false
		default:
			return thresholdSlightly, thresholdModestly, false
		}
	}
}

func pick(up bool, gain, decline Category) Category {
	if up {
		return gain
	}
	return decline
}
