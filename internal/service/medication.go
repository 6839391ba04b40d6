package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/mindtrack/mindtrack/internal/repository"
)

// MedicationOwned rejects doses that reference a medication the user does not
// have.
func MedicationOwned(medications repository.EntryRepository[model.Medication]) func(ctx context.Context, userID string, dose *model.MedicationDose) error {
	return func(ctx context.Context, userID string, dose *model.MedicationDose) error {
		_, err := medications.ByID(ctx, userID, dose.MedicationID)
		if errors.Is(err, repository.ErrEntryNotFound) {
			return fmt.Errorf("%w: unknown medication_id", model.ErrInvalidEntry)
		}
		return err
	}
}
