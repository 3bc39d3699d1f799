package budget

import (
	"fmt"

	"cashflow-api/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	defaultWarningRatio  = decimal.NewFromFloat(0.8)
	defaultExceededRatio = decimal.NewFromInt(1)
)

// Policy is the display banding used by presentation layers. It ignores the
// category's alert threshold; with the default ratios its bands line up with
// AlertLevelFor at a threshold of 0.8.
type Policy struct {
	WarningRatio  decimal.Decimal
	ExceededRatio decimal.Decimal
}

// DefaultPolicy returns the 80% / 100% banding
func DefaultPolicy() Policy {
	return Policy{
		WarningRatio:  defaultWarningRatio,
		ExceededRatio: defaultExceededRatio,
	}
}

// NewPolicy builds a policy and checks 0 <= warning <= exceeded, exceeded > 0
func NewPolicy(warningRatio, exceededRatio decimal.Decimal) (Policy, error) {
	if warningRatio.IsNegative() {
		return Policy{}, fmt.Errorf("%w: warning ratio must not be negative", ErrInvalidInput)
	}
	if !exceededRatio.IsPositive() {
		return Policy{}, fmt.Errorf("%w: exceeded ratio must be positive", ErrInvalidInput)
	}
	if warningRatio.GreaterThan(exceededRatio) {
		return Policy{}, fmt.Errorf("%w: warning ratio must not exceed the exceeded ratio", ErrInvalidInput)
	}

	return Policy{
		WarningRatio:  warningRatio,
		ExceededRatio: exceededRatio,
	}, nil
}

// Band classifies percentUsed for display
func (p Policy) Band(percentUsed int) models.AlertLevel {
	pct := decimal.NewFromInt(int64(percentUsed))

	switch {
	case pct.GreaterThan(p.ExceededRatio.Mul(hundred)):
		return models.AlertLevelExceeded
	case pct.GreaterThan(p.WarningRatio.Mul(hundred)):
		return models.AlertLevelWarning
	default:
		return models.AlertLevelOK
	}
}
