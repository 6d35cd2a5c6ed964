package services

import (
	"strconv"
	"strings"

	"github.com/moatasim2013m-byte/official-peekaboo-website--sub001/internal/models"
)

// Happy hour: sessions starting 10:00-13:59 cost a flat rate per hour.
const (
	happyHourRate  = 3.5
	happyHourFrom  = 10
	happyHourUntil = 14
)

// HourlyPrice computes the price of one child's session. Two computation
// paths exist: the time-of-day flat rate and the settings-configured tiers;
// the flat rate wins whenever the start time falls inside the happy-hour
// window.
func HourlyPrice(rates models.HourlyRates, hours int, slotStartTime string) float64 {
	if hours < 1 {
		hours = 2
	}
	if isHappyHour(slotStartTime) {
		return happyHourRate * float64(hours)
	}

	switch hours {
	case 1:
		return rates.OneHour
	case 2:
		return rates.TwoHours
	case 3:
		return rates.ThreeHours
	default:
		// beyond 3 hours: 2h base plus the extra-hour rate
		return rates.TwoHours + float64(hours-2)*rates.ExtraHour
	}
}

func isHappyHour(startTime string) bool {
	hourPart, _, ok := strings.Cut(startTime, ":")
	if !ok {
		return false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return false
	}
	return hour >= happyHourFrom && hour < happyHourUntil
}
