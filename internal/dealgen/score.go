// Package dealgen synthesizes travel offers from the simulated agent
// personas and ranks them by a value heuristic.
//
// Everything here is pure: no I/O, no clocks, and randomness only through a
// caller-supplied *rand.Rand, so the same trip always yields the same offers.
package dealgen

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkordes/smarttravel/internal/domain"
)

// TopN is the number of deals kept from a planning run.
const TopN = 3

// Weights of the value score.
const (
	ratingWeight        = 20.0
	minutePenaltyWeight = -5.0
)

// SavingsPercentage returns (originalPrice - price) / originalPrice * 100.
// It returns 0 when originalPrice is not positive instead of dividing by it.
func SavingsPercentage(price, originalPrice float64) float64 {
	if originalPrice <= 0 {
		return 0
	}
	return (originalPrice - price) / originalPrice * 100
}

// ParseMinutes reads the leading number of a confirmation time such as
// "2 min", "1.5 mins", "1 hour" or "45s" and returns it in minutes.
// Units starting with "h" are hours and units starting with "s" are seconds;
// anything else, including no unit, is minutes. Input without a leading
// number parses as 0.
func ParseMinutes(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}

	unit := strings.TrimLeftFunc(s[end:], unicode.IsSpace)
	switch {
	case strings.HasPrefix(strings.ToLower(unit), "h"):
		return n * 60
	case strings.HasPrefix(strings.ToLower(unit), "s"):
		return n / 60
	default:
		return n
	}
}

// ValueScore combines discount, hotel rating and confirmation speed:
//
//	savingsPercentage + hotelRating*20 + parsedMinutes*(-5)
func ValueScore(d domain.Deal) float64 {
	return SavingsPercentage(d.Price, d.OriginalPrice) +
		float64(d.HotelRating)*ratingWeight +
		ParseMinutes(d.ConfirmationTime)*minutePenaltyWeight
}

// Rank scores every candidate, sorts them by descending value score and
// returns the first n. Equal scores keep their input order.
// The input slice is not modified; the result is a new slice whose
// elements carry their ValueScore.
func Rank(candidates []domain.Deal, n int) []domain.Deal {
	order := RankOrder(candidates, n)
	ranked := make([]domain.Deal, len(order))
	for i, pos := range order {
		ranked[i] = candidates[pos]
		ranked[i].ValueScore = ValueScore(candidates[pos])
	}
	return ranked
}

// RankOrder is Rank expressed as positions into candidates: the result
// lists the indexes of the top n candidates, best first.
func RankOrder(candidates []domain.Deal, n int) []int {
	if n <= 0 || len(candidates) == 0 {
		return []int{}
	}

	scores := make([]float64, len(candidates))
	order := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = ValueScore(c)
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	if n > len(order) {
		n = len(order)
	}
	return order[:n]
}
