package models

// HourlyRates is the settings-configured tiered price table for hourly play.
type HourlyRates struct {
	OneHour    float64 `json:"hourly_1hr"`
	TwoHours   float64 `json:"hourly_2hr"`
	ThreeHours float64 `json:"hourly_3hr"`
	ExtraHour  float64 `json:"hourly_extra_hr"`
}

// DefaultHourlyRates backs the price computation when settings are missing.
func DefaultHourlyRates() HourlyRates {
	return HourlyRates{OneHour: 7, TwoHours: 10, ThreeHours: 13, ExtraHour: 3}
}
