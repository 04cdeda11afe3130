package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p ValuePayload) Validate() error {
	if p.Value == nil {
		return errors.New("value is required")
	}
	return nil
}

func (r ControlRequest) Validate() error {
	if r.MaxPopulation == nil && r.IntervalSeconds == nil {
		return errors.New("nothing to change: set maxPopulation and/or intervalSeconds")
	}
	return nil
}
