package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/best-odds/internal/models"
)

// CalculateBetDistribution splits totalStake so that every outcome returns the
// same payout: stake_k = (totalStake / invsum) / odd_k.
func CalculateBetDistribution(odds models.OddsTriplet, totalStake float64) (models.StakePlan, error) {
	if err := odds.Validate(); err != nil {
		return models.StakePlan{}, err
	}
	if totalStake <= 0 {
		return models.StakePlan{}, fmt.Errorf("%w: %v", models.ErrInvalidStake, totalStake)
	}

	inv := InvSum(odds)
	plan := models.StakePlan{
		TotalStake: totalStake,
		Odds:       odds,
		InverseSum: inv,
		BaseUnit:   totalStake / inv,
		IsSureBet:  inv < 1,
	}
	for k, odd := range odds {
		plan.Stakes[k] = plan.BaseUnit / odd
	}
	plan.Profits = CalculateProfitLoss(odds, plan.Stakes, totalStake)
	return plan, nil
}

// CalculateProfitLoss returns, for each outcome, the net result if that
// outcome occurs.
func CalculateProfitLoss(odds models.OddsTriplet, stakes [3]float64, totalStake float64) [3]float64 {
	var profits [3]float64
	for k := range odds {
		profits[k] = stakes[k]*odds[k] - totalStake
	}
	return profits
}

// RoundStakes rounds the plan's stakes to places decimals. The rounding
// residue goes to the largest stake so the rounded stakes add up to the total
// stake exactly.
func RoundStakes(plan models.StakePlan, places int32) [3]decimal.Decimal {
	var (
		rounded [3]decimal.Decimal
		sum     = decimal.Zero
		largest int
	)
	for k, s := range plan.Stakes {
		rounded[k] = decimal.NewFromFloat(s).Round(places)
		sum = sum.Add(rounded[k])
		if s > plan.Stakes[largest] {
			largest = k
		}
	}

	total := decimal.NewFromFloat(plan.TotalStake).Round(places)
	rounded[largest] = rounded[largest].Add(total.Sub(sum))
	return rounded
}
