package model

import "fmt"

const (
	WeightUnitKilograms = "kg"
	WeightUnitPounds    = "lb"
)

type WeightEntry struct {
	Logged
	Weight float64 `db:"weight" json:"weight"`
	Unit   string  `db:"unit" json:"unit"`
	Note   string  `db:"note" json:"note"`
}

func (w *WeightEntry) Validate() error {
	if w.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidEntry)
	}
	switch w.Unit {
	case WeightUnitKilograms, WeightUnitPounds:
	case "":
		w.Unit = WeightUnitKilograms
	default:
		return fmt.Errorf("%w: unit must be kg or lb", ErrInvalidEntry)
	}
	return nil
}

func (w *WeightEntry) Tracked() (Category, bool) { return CategoryWeight, true }
