package sampledata

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PostTime returns the wall-clock hour and minute for a race number, spacing
// races spacingMinutes apart from the base hour. Minute overflow carries into
// the hour so race 5 at 15-minute spacing from 19:00 posts at 20:15, not 19:75.
func PostTime(baseHour, raceNumber, spacingMinutes int) (hour, minute int) {
	totalMinutes := raceNumber * spacingMinutes
	return baseHour + totalMinutes/60, totalMinutes % 60
}

// FormatPostTime renders a post time as "HH:MM".
func FormatPostTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// payoutDivisors[p-1] divides the purse for finish position p.
var payoutDivisors = []int64{1, 2, 4, 8, 16}

// Payout returns the earnings for a finish position: the full purse for the
// winner, halving for each subsequent place down to fifth, zero beyond.
func Payout(purse decimal.Decimal, finishPosition int) decimal.Decimal {
	if finishPosition < 1 || finishPosition > len(payoutDivisors) {
		return decimal.Zero
	}
	return purse.Div(decimal.NewFromInt(payoutDivisors[finishPosition-1])).Round(2)
}
