package recommend

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput rejects malformed requests before any pricing or caption
// logic runs. Callers surface it as a bad request; nothing is retried.
var ErrInvalidInput = errors.New("recommend: invalid input")

// Unit identifies how the declared work time is expressed.
type Unit string

const (
	UnitHours Unit = "hours"
	UnitDays  Unit = "days"
)

// ParseUnit resolves a user-supplied time unit. Singular spellings are
// accepted; anything else fails with ErrInvalidInput.
func ParseUnit(raw string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hours", "hour":
		return UnitHours, nil
	case "days", "day":
		return UnitDays, nil
	}
	return "", fmt.Errorf("%w: time_unit must be hours or days", ErrInvalidInput)
}

// NormalizeHours converts a declared duration into hours using the nominal
// 8-hour workday. The result is always positive and finite.
func NormalizeHours(value float64, unit Unit) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, fmt.Errorf("%w: time_value must be a positive number", ErrInvalidInput)
	}
	switch unit {
	case UnitHours:
		return value, nil
	case UnitDays:
		return value * HoursPerDay, nil
	}
	return 0, fmt.Errorf("%w: time_unit must be hours or days", ErrInvalidInput)
}

// PriceRequest carries the declared attributes that drive a recommendation.
type PriceRequest struct {
	Material  string
	TimeValue float64
	TimeUnit  Unit
}

// PriceBand is the recommended range in whole rupees. Low never exceeds High
// and never drops below the material's base price.
type PriceBand struct {
	Low  int `json:"price_low"`
	High int `json:"price_high"`
}

// Price derives a price band from material and declared effort. Unknown
// materials fall back to the floor base price instead of failing, keeping the
// upload flow unblocked. The rule set is fixed: base price plus hourly labor,
// a handmade premium, and a stepped quality bonus past the effort threshold.
func Price(req PriceRequest) (PriceBand, error) {
	hours, err := NormalizeHours(req.TimeValue, req.TimeUnit)
	if err != nil {
		return PriceBand{}, err
	}
	base := BasePrice(req.Material)
	mid := (float64(base) + hours*HourlyRate) * HandmadePremium
	if hours > QualityThresholdHours {
		mid *= QualityMultiplier
	}
	low := int(math.Round(mid * BandLow))
	high := int(math.Round(mid * BandHigh))
	if low < base {
		low = base
	}
	return PriceBand{Low: low, High: high}, nil
}
