package cea

// Config holds run-wide analysis parameters.
// Units:
//   - DiscountRate: fraction in [0,1), applied as one compounding period
//   - WTP: currency per QALY gained (willingness-to-pay threshold)
//   - VisitCost/TestCost: currency per outpatient visit / diagnostic test
type Config struct {
	DiscountRate float64
	WTP          float64
	VisitCost    float64
	TestCost     float64
}

// Intervention is one arm of the comparison.
// Visits and Tests are quantities of additional health-care utilisation;
// both default to zero, in which case the total cost equals the base cost.
type Intervention struct {
	Name     string
	BaseCost float64
	QALY     float64
	Visits   float64
	Tests    float64
}

// Appraisal is the economic breakdown of a single intervention.
type Appraisal struct {
	TotalCost      float64
	DiscountedCost float64
	DiscountedQALY float64
	CostPerQALY    float64
}

// Verdict classifies an incremental comparison on the CE plane.
type Verdict int

const (
	// VerdictCostEffective means the ICER is acceptable at the WTP threshold.
	VerdictCostEffective Verdict = iota

	// VerdictNotCostEffective means the ICER exceeds what the WTP threshold allows.
	VerdictNotCostEffective

	// VerdictDominant means A gains QALYs at no extra cost (or saves money at
	// no QALY loss); the ICER is not compared to WTP.
	VerdictDominant

	// VerdictDominated means A loses QALYs at no saving; the ICER is not
	// compared to WTP.
	VerdictDominated
)

func (v Verdict) String() string {
	switch v {
	case VerdictCostEffective:
		return "cost-effective"
	case VerdictNotCostEffective:
		return "not cost-effective"
	case VerdictDominant:
		return "dominant"
	case VerdictDominated:
		return "dominated"
	default:
		return "unknown"
	}
}

// Comparison is the incremental analysis of intervention A versus B.
// DeltaCost and DeltaQALY are discounted differences (A minus B).
type Comparison struct {
	A, B      Appraisal
	DeltaCost float64
	DeltaQALY float64
	ICER      float64
	Verdict   Verdict
}
