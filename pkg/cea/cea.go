package cea

import (
	"fmt"
	"math"
)

// epsQALY is the smallest QALY difference treated as distinct; anything
// closer makes the corresponding ratio undefined rather than enormous.
const epsQALY = 1e-9

// Analyzer runs deterministic cost-effectiveness comparisons under a
// fixed, validated configuration.
type Analyzer struct {
	cfg Config
}

// New validates cfg and returns an Analyzer.
//   - DiscountRate must lie in [0,1): a negative rate would inflate future
//     values and a rate >= 1 inverts the economic meaning.
//   - WTP must be > 0.
//   - Unit utilisation costs must be >= 0.
func New(cfg Config) (*Analyzer, error) {
	if cfg.DiscountRate < 0 || cfg.DiscountRate >= 1 {
		return nil, fmt.Errorf("%w: discount rate %v outside [0,1)", ErrInvalidInput, cfg.DiscountRate)
	}
	if cfg.WTP <= 0 {
		return nil, fmt.Errorf("%w: willingness-to-pay threshold %v must be positive", ErrInvalidInput, cfg.WTP)
	}
	if cfg.VisitCost < 0 || cfg.TestCost < 0 {
		return nil, fmt.Errorf("%w: negative unit utilisation cost", ErrInvalidInput)
	}
	return &Analyzer{cfg: cfg}, nil
}

// Config returns the validated configuration the analyzer runs under.
func (a *Analyzer) Config() Config { return a.cfg }

// TotalCost sums an intervention's base cost with its additional
// health-care utilisation (outpatient visits and diagnostic tests).
// With zero utilisation it reduces to the base cost unchanged.
func TotalCost(base, visits, visitCost, tests, testCost float64) (float64, error) {
	if base < 0 {
		return 0, fmt.Errorf("%w: negative base cost %v", ErrInvalidInput, base)
	}
	if visits < 0 || tests < 0 {
		return 0, fmt.Errorf("%w: negative utilisation quantity", ErrInvalidInput)
	}
	if visitCost < 0 || testCost < 0 {
		return 0, fmt.Errorf("%w: negative unit utilisation cost", ErrInvalidInput)
	}
	return base + visits*visitCost + tests*testCost, nil
}

// DiscountValue brings value to its present worth over one compounding
// period: value / (1 + rate). Rate must lie in [0,1).
func DiscountValue(value, rate float64) (float64, error) {
	if rate < 0 || rate >= 1 {
		return 0, fmt.Errorf("%w: discount rate %v outside [0,1)", ErrInvalidInput, rate)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: negative value %v", ErrInvalidInput, value)
	}
	return value / (1 + rate), nil
}

// CostPerQALY returns cost / qaly. A zero QALY denominator makes the
// ratio undefined and is reported as such, never as +Inf.
func CostPerQALY(cost, qaly float64) (float64, error) {
	if qaly < 0 {
		return 0, fmt.Errorf("%w: negative QALY %v", ErrInvalidInput, qaly)
	}
	if qaly <= epsQALY {
		return 0, fmt.Errorf("%w: cost per QALY with zero QALYs", ErrUndefinedRatio)
	}
	return cost / qaly, nil
}

// ICER returns the signed incremental cost-effectiveness ratio
// (costA - costB) / (qalyA - qalyB). When both arms yield the same
// QALYs the ratio is undefined.
func ICER(costA, costB, qalyA, qalyB float64) (float64, error) {
	dq := qalyA - qalyB
	if math.Abs(dq) <= epsQALY {
		return 0, fmt.Errorf("%w: interventions yield identical QALYs", ErrUndefinedRatio)
	}
	return (costA - costB) / dq, nil
}

// Appraise computes the economic breakdown of one intervention: total
// cost, discounted cost, discounted QALYs, and cost per QALY.
func (a *Analyzer) Appraise(iv Intervention) (Appraisal, error) {
	total, err := TotalCost(iv.BaseCost, iv.Visits, a.cfg.VisitCost, iv.Tests, a.cfg.TestCost)
	if err != nil {
		return Appraisal{}, fmt.Errorf("%s: %w", iv.Name, err)
	}
	dcost, err := DiscountValue(total, a.cfg.DiscountRate)
	if err != nil {
		return Appraisal{}, fmt.Errorf("%s: %w", iv.Name, err)
	}
	dqaly, err := DiscountValue(iv.QALY, a.cfg.DiscountRate)
	if err != nil {
		return Appraisal{}, fmt.Errorf("%s: %w", iv.Name, err)
	}
	cpq, err := CostPerQALY(dcost, dqaly)
	if err != nil {
		return Appraisal{}, fmt.Errorf("%s: %w", iv.Name, err)
	}
	return Appraisal{
		TotalCost:      total,
		DiscountedCost: dcost,
		DiscountedQALY: dqaly,
		CostPerQALY:    cpq,
	}, nil
}

// Compare appraises both arms and derives the incremental analysis:
// discounted deltas, the ICER, and a CE-plane verdict against WTP.
// Dominant and dominated outcomes are classified qualitatively and the
// ICER is never weighed against the threshold for them.
func (a *Analyzer) Compare(ivA, ivB Intervention) (*Comparison, error) {
	appA, err := a.Appraise(ivA)
	if err != nil {
		return nil, err
	}
	appB, err := a.Appraise(ivB)
	if err != nil {
		return nil, err
	}

	dc := appA.DiscountedCost - appB.DiscountedCost
	dq := appA.DiscountedQALY - appB.DiscountedQALY

	icer, err := ICER(appA.DiscountedCost, appB.DiscountedCost, appA.DiscountedQALY, appB.DiscountedQALY)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		A:         appA,
		B:         appB,
		DeltaCost: dc,
		DeltaQALY: dq,
		ICER:      icer,
		Verdict:   a.classify(dc, dq, icer),
	}, nil
}

// classify places (dq, dc) on the CE plane. dq is never ~0 here; Compare
// has already rejected that as an undefined ICER.
func (a *Analyzer) classify(dc, dq, icer float64) Verdict {
	switch {
	case dq > 0 && dc <= 0:
		return VerdictDominant
	case dq < 0 && dc >= 0:
		return VerdictDominated
	case dq > 0:
		// Northeast quadrant: paying icer per QALY gained.
		if icer < a.cfg.WTP {
			return VerdictCostEffective
		}
		return VerdictNotCostEffective
	default:
		// Southwest quadrant: saving icer per QALY forgone; acceptable
		// when the saving exceeds what the threshold values the QALY at.
		if icer > a.cfg.WTP {
			return VerdictCostEffective
		}
		return VerdictNotCostEffective
	}
}
