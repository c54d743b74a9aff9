package cea

import "errors"

var (
	// ErrInvalidInput indicates a value outside its economic domain:
	// a negative cost or QALY, a discount rate outside [0,1), or a
	// non-positive willingness-to-pay threshold.
	ErrInvalidInput = errors.New("cea: invalid input")

	// ErrUndefinedRatio indicates a ratio whose denominator is zero:
	// cost per QALY with zero QALYs, or an ICER between two
	// interventions with identical QALYs.
	ErrUndefinedRatio = errors.New("cea: undefined ratio")
)
