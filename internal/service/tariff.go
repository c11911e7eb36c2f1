package service

import "errors"

// Tariff prices charging sessions. Cost lives in the service layer rather
// than a database trigger so the rate is visible and the computation is
// testable.
type Tariff struct {
	RatePerKWh float64
}

// NewTariff validates and returns a tariff.
func NewTariff(ratePerKWh float64) (*Tariff, error) {
	if ratePerKWh <= 0 {
		return nil, errors.New("tariff: rate per kWh must be positive")
	}
	return &Tariff{RatePerKWh: ratePerKWh}, nil
}

// Cost is a pure function of energy consumed.
func (t *Tariff) Cost(energyKWh float64) float64 {
	return energyKWh * t.RatePerKWh
}
