package types

import (
	"fmt"
	"math"
	"strconv"
)

// Money is a float64 wrapper representing an amount in pounds sterling.
type Money float64

// String formats the amount with the currency symbol and two decimals.
func (m Money) String() string {
	return fmt.Sprintf("£%.2f", float64(m))
}

// Humanized returns the amount with thousands separators ("£46,734.00").
func (m Money) Humanized() string {
	v := math.Abs(float64(m))
	whole := int64(v)
	frac := int64(math.Round((v - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	digits := strconv.FormatInt(whole, 10)
	grouped := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, digits[i])
	}

	sign := ""
	if m < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s£%s.%02d", sign, grouped, frac)
}

// PerQALY formats the amount as a ratio against one QALY.
func (m Money) PerQALY() string {
	return m.Humanized() + "/QALY"
}
