package emi

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanhub-backend/internal/domain/apperr"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_KnownScenario(t *testing.T) {
	// 500,000 at 10% for 12 months.
	res, err := Calculate(d("500000"), d("10"), 12)
	require.NoError(t, err)

	assert.True(t, res.MonthlyEMI.Equal(d("43957.94")), "emi = %s", res.MonthlyEMI)
	assert.True(t, res.TotalAmount.Equal(d("527495.32")), "total = %s", res.TotalAmount)
	assert.True(t, res.TotalInterest.Equal(d("27495.32")), "interest = %s", res.TotalInterest)
	assert.Equal(t, 12, res.TenureMonths)
}

func TestCalculate_ZeroRateIsFlatDivision(t *testing.T) {
	cases := []struct {
		p string
		n int
	}{
		{"1200", 12},
		{"100000", 24},
		{"999.99", 3},
		{"50", 5},
	}
	for _, tc := range cases {
		res, err := Calculate(d(tc.p), decimal.Zero, tc.n)
		require.NoError(t, err)

		want := d(tc.p).Div(decimal.NewFromInt(int64(tc.n))).RoundBank(2)
		assert.True(t, res.MonthlyEMI.Equal(want), "P=%s N=%d: got %s want %s", tc.p, tc.n, res.MonthlyEMI, want)
		assert.True(t, res.TotalInterest.IsZero(), "interest should be zero, got %s", res.TotalInterest)
		assert.True(t, res.TotalAmount.Equal(d(tc.p)), "total should equal principal, got %s", res.TotalAmount)
	}
}

func TestCalculate_TotalRepaymentNeverBelowPrincipal(t *testing.T) {
	for _, p := range []string{"1000", "25000.50", "500000", "7500000"} {
		for _, r := range []string{"0.5", "1", "7.25", "10", "18", "36"} {
			for _, n := range []int{1, 6, 12, 60, 240} {
				res, err := Calculate(d(p), d(r), n)
				require.NoError(t, err)
				assert.True(t, res.TotalAmount.GreaterThanOrEqual(d(p)),
					"P=%s R=%s N=%d total=%s", p, r, n, res.TotalAmount)
				assert.True(t, res.MonthlyEMI.Mul(decimal.NewFromInt(int64(n))).GreaterThanOrEqual(d(p)),
					"P=%s R=%s N=%d emi*n below principal", p, r, n)
			}
		}
	}
}

func TestCalculate_MonotonicInPrincipal(t *testing.T) {
	prev := decimal.Zero
	for p := int64(1000); p <= 1_000_000; p += 7919 {
		got, err := MonthlyEMI(decimal.NewFromInt(p), d("12.5"), 36)
		require.NoError(t, err)
		assert.True(t, got.GreaterThanOrEqual(prev), "EMI decreased at P=%d: %s < %s", p, got, prev)
		prev = got
	}
}

func TestCalculate_BankersRounding(t *testing.T) {
	// 0.125 per month rounds to even: 0.12.
	res, err := Calculate(d("1"), decimal.Zero, 8)
	require.NoError(t, err)
	assert.True(t, res.MonthlyEMI.Equal(d("0.12")), "got %s", res.MonthlyEMI)
}

func TestCalculate_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		p    string
		r    string
		n    int
	}{
		{"zero principal", "0", "10", 12},
		{"negative principal", "-5", "10", 12},
		{"zero tenure", "1000", "10", 0},
		{"negative tenure", "1000", "10", -3},
		{"negative rate", "1000", "-1", 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(d(tc.p), d(tc.r), tc.n)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "want validation error, got %v", err)
		})
	}
}

func TestMaxPrincipal_InvertsCalculate(t *testing.T) {
	p := d("250000")
	payment, err := MonthlyEMI(p, d("11"), 48)
	require.NoError(t, err)

	back := MaxPrincipal(payment, d("11"), 48)
	assert.True(t, back.Sub(p).Abs().LessThan(d("1")), "inverse drifted: %s vs %s", back, p)
}

func TestMaxPrincipal_ZeroRate(t *testing.T) {
	got := MaxPrincipal(d("1000"), decimal.Zero, 12)
	assert.True(t, got.Equal(d("12000")), "got %s", got)
}

func TestMaxPrincipal_NonPositivePayment(t *testing.T) {
	assert.True(t, MaxPrincipal(decimal.Zero, d("10"), 12).IsZero())
	assert.True(t, MaxPrincipal(d("-10"), d("10"), 12).IsZero())
	assert.True(t, MaxPrincipal(d("10"), d("10"), 0).IsZero())
}

func TestCalculate_VeryLongTenureUsesLimit(t *testing.T) {
	for _, n := range []int{1000, 10000, 100000, 1000000} {
		res, err := Calculate(d("500000"), d("10"), n)
		require.NoError(t, err, "N=%d", n)
		// interest-only floor: P * r
		assert.True(t, res.MonthlyEMI.GreaterThanOrEqual(d("4166.67")), "N=%d emi=%s", n, res.MonthlyEMI)
		assert.True(t, res.MonthlyEMI.LessThan(d("4170")), "N=%d emi=%s", n, res.MonthlyEMI)
	}

	res, err := Calculate(d("500000"), d("10"), 100000)
	require.NoError(t, err)
	assert.True(t, res.MonthlyEMI.Equal(d("4166.67")), "emi = %s", res.MonthlyEMI)
}

func TestCalculate_RateTooSmallForFloat(t *testing.T) {
	res, err := Calculate(d("1200"), d("0.0000000000000000001"), 12)
	require.NoError(t, err)
	assert.True(t, res.MonthlyEMI.Equal(d("100")), "emi = %s", res.MonthlyEMI)
}

func TestMaxPrincipal_VeryLongTenureUsesLimit(t *testing.T) {
	got := MaxPrincipal(d("10000"), d("10"), 100000)
	assert.True(t, got.Equal(d("1200000")), "got %s", got)

	for _, n := range []int{1000, 10000} {
		p := MaxPrincipal(d("10000"), d("10"), n)
		assert.True(t, p.LessThan(d("1200000.01")), "N=%d p=%s", n, p)
		assert.True(t, p.GreaterThan(d("1199000")), "N=%d p=%s", n, p)
	}
}
