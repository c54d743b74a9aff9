package cea

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppraise_UndiscountedBaseCase(t *testing.T) {
	an, err := New(Config{DiscountRate: 0, WTP: 20000})
	require.NoError(t, err)

	a := Intervention{Name: "A", BaseCost: 15000, QALY: 10}
	b := Intervention{Name: "B", BaseCost: 8000, QALY: 8}

	appA, err := an.Appraise(a)
	require.NoError(t, err)
	appB, err := an.Appraise(b)
	require.NoError(t, err)

	// rate 0: discounting is the identity
	assert.InDelta(t, 15000, appA.TotalCost, 1e-9)
	assert.InDelta(t, 15000, appA.DiscountedCost, 1e-9)
	assert.InDelta(t, 10, appA.DiscountedQALY, 1e-9)
	assert.InDelta(t, 1500, appA.CostPerQALY, 1e-9)

	assert.InDelta(t, 8000, appB.DiscountedCost, 1e-9)
	assert.InDelta(t, 1000, appB.CostPerQALY, 1e-9)

	cmp, err := an.Compare(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 3500, cmp.ICER, 1e-9)
	assert.Equal(t, VerdictCostEffective, cmp.Verdict)

	t.Logf("A: total=%.2f cpq=%.2f | B: total=%.2f cpq=%.2f | ICER=%.2f (%s)",
		appA.TotalCost, appA.CostPerQALY, appB.TotalCost, appB.CostPerQALY, cmp.ICER, cmp.Verdict)
}

func TestTotalCost_Utilisation(t *testing.T) {
	// zero utilisation: pass-through
	got, err := TotalCost(46734, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 46734, got, 1e-9)

	// visits and tests add on top of the base cost
	got, err = TotalCost(46734, 4, 120, 2, 85)
	require.NoError(t, err)
	assert.InDelta(t, 46734+4*120+2*85, got, 1e-9)

	_, err = TotalCost(-1, 0, 0, 0, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = TotalCost(100, -1, 10, 0, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDiscountValue_NICERate(t *testing.T) {
	got, err := DiscountValue(10000, 0.035)
	require.NoError(t, err)
	assert.InDelta(t, 9661.84, got, 0.01)
}

func TestDiscountValue_BoundAndMonotonicity(t *testing.T) {
	const value = 12345.67
	rates := []float64{0, 0.01, 0.035, 0.1, 0.5, 0.99}

	prev := value + 1
	for _, r := range rates {
		got, err := DiscountValue(value, r)
		require.NoError(t, err, "rate %v", r)

		if r == 0 {
			assert.InDelta(t, value, got, 1e-9)
		} else {
			assert.Less(t, got, value, "rate %v", r)
		}
		// strictly decreasing in rate
		assert.Less(t, got, prev, "rate %v", r)
		prev = got

		t.Logf("rate=%.3f -> %.4f", r, got)
	}
}

func TestDiscountValue_RejectsRateOutOfRange(t *testing.T) {
	for _, r := range []float64{-0.01, 1.0, 1.5} {
		_, err := DiscountValue(100, r)
		require.ErrorIs(t, err, ErrInvalidInput, "rate %v", r)
	}
	_, err := DiscountValue(-5, 0.035)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCostPerQALY_ZeroQALYUndefined(t *testing.T) {
	for _, cost := range []float64{0, 1, 46734} {
		_, err := CostPerQALY(cost, 0)
		require.ErrorIs(t, err, ErrUndefinedRatio, "cost %v", cost)
	}
	_, err := CostPerQALY(100, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestICER_EqualQALYsUndefined(t *testing.T) {
	_, err := ICER(15000, 8000, 8, 8)
	require.ErrorIs(t, err, ErrUndefinedRatio)

	// the same condition must surface through a full comparison
	an, err := New(Config{DiscountRate: 0, WTP: 20000})
	require.NoError(t, err)
	_, err = an.Compare(
		Intervention{Name: "A", BaseCost: 15000, QALY: 8},
		Intervention{Name: "B", BaseCost: 8000, QALY: 8},
	)
	require.ErrorIs(t, err, ErrUndefinedRatio)
}

func TestICER_SwapAntisymmetry(t *testing.T) {
	cases := []struct {
		costA, costB, qalyA, qalyB float64
	}{
		{15000, 8000, 10, 8},
		{5000, 8000, 10, 8},
		{46734, 45447, 3.57, 3.46},
	}
	for i, c := range cases {
		ab, err := ICER(c.costA, c.costB, c.qalyA, c.qalyB)
		require.NoError(t, err)
		ba, err := ICER(c.costB, c.costA, c.qalyB, c.qalyA)
		require.NoError(t, err)

		// numerator and denominator both flip sign, so the ratio is invariant
		assert.InDelta(t, ab, ba, 1e-9, "case %d", i)
	}
}

func TestCompare_DominantIsNotComparedToWTP(t *testing.T) {
	an, err := New(Config{DiscountRate: 0, WTP: 20000})
	require.NoError(t, err)

	cmp, err := an.Compare(
		Intervention{Name: "A", BaseCost: 5000, QALY: 10},
		Intervention{Name: "B", BaseCost: 8000, QALY: 8},
	)
	require.NoError(t, err)

	assert.Negative(t, cmp.ICER)
	assert.Equal(t, VerdictDominant, cmp.Verdict)
	assert.Equal(t, "dominant", cmp.Verdict.String())
}

func TestCompare_DominatedIsNotComparedToWTP(t *testing.T) {
	an, err := New(Config{DiscountRate: 0, WTP: 20000})
	require.NoError(t, err)

	cmp, err := an.Compare(
		Intervention{Name: "A", BaseCost: 8000, QALY: 8},
		Intervention{Name: "B", BaseCost: 5000, QALY: 10},
	)
	require.NoError(t, err)

	assert.Negative(t, cmp.ICER)
	assert.Equal(t, VerdictDominated, cmp.Verdict)
}

func TestCompare_NortheastAgainstThreshold(t *testing.T) {
	an, err := New(Config{DiscountRate: 0, WTP: 20000})
	require.NoError(t, err)

	// ICER 3500 < 20000: acceptable
	cmp, err := an.Compare(
		Intervention{Name: "A", BaseCost: 15000, QALY: 10},
		Intervention{Name: "B", BaseCost: 8000, QALY: 8},
	)
	require.NoError(t, err)
	assert.Equal(t, VerdictCostEffective, cmp.Verdict)

	// ICER 25000 > 20000: too expensive per QALY gained
	cmp, err = an.Compare(
		Intervention{Name: "A", BaseCost: 58000, QALY: 10},
		Intervention{Name: "B", BaseCost: 8000, QALY: 8},
	)
	require.NoError(t, err)
	assert.Equal(t, VerdictNotCostEffective, cmp.Verdict)
}

func TestCompare_SouthwestAgainstThreshold(t *testing.T) {
	an, err := New(Config{DiscountRate: 0, WTP: 20000})
	require.NoError(t, err)

	// A is cheaper and less effective; saves 25000 per QALY forgone
	cmp, err := an.Compare(
		Intervention{Name: "A", BaseCost: 8000, QALY: 8},
		Intervention{Name: "B", BaseCost: 58000, QALY: 10},
	)
	require.NoError(t, err)
	assert.Positive(t, cmp.ICER)
	assert.Equal(t, VerdictCostEffective, cmp.Verdict)

	// saving only 3500 per QALY forgone: the QALYs were worth more
	cmp, err = an.Compare(
		Intervention{Name: "A", BaseCost: 8000, QALY: 8},
		Intervention{Name: "B", BaseCost: 15000, QALY: 10},
	)
	require.NoError(t, err)
	assert.Equal(t, VerdictNotCostEffective, cmp.Verdict)
}

func TestCompare_DiscountedBaseCase(t *testing.T) {
	an, err := New(Config{DiscountRate: 0.035, WTP: 20000})
	require.NoError(t, err)

	cmp, err := an.Compare(
		Intervention{Name: "A", BaseCost: 46734, QALY: 3.57},
		Intervention{Name: "B", BaseCost: 45447, QALY: 3.46},
	)
	require.NoError(t, err)

	// every term carries the same 1/1.035 factor, so the ICER matches the
	// undiscounted ratio of raw deltas
	assert.InDelta(t, (46734.0-45447.0)/(3.57-3.46), cmp.ICER, 1e-6)
	assert.InDelta(t, 46734.0/1.035, cmp.A.DiscountedCost, 1e-6)
	assert.InDelta(t, 3.57/1.035, cmp.A.DiscountedQALY, 1e-9)
	assert.Equal(t, VerdictCostEffective, cmp.Verdict)

	t.Logf("dCost=%.2f dQALY=%.4f ICER=%.2f (%s)",
		cmp.DeltaCost, cmp.DeltaQALY, cmp.ICER, cmp.Verdict)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cases := []Config{
		{DiscountRate: -0.1, WTP: 20000},
		{DiscountRate: 1.0, WTP: 20000},
		{DiscountRate: 0.035, WTP: 0},
		{DiscountRate: 0.035, WTP: -1},
		{DiscountRate: 0.035, WTP: 20000, VisitCost: -5},
	}
	for i, cfg := range cases {
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
	}
}

func ExampleAnalyzer_Compare() {
	an, _ := New(Config{DiscountRate: 0, WTP: 20000})
	cmp, _ := an.Compare(
		Intervention{Name: "A", BaseCost: 15000, QALY: 10},
		Intervention{Name: "B", BaseCost: 8000, QALY: 8},
	)
	fmt.Printf("ICER=%.0f verdict=%s\n", cmp.ICER, cmp.Verdict)
	// Output: ICER=3500 verdict=cost-effective
}
