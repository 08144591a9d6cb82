package mapper

import (
	"math"

	"insurisk/internal/models"
)

// EvaluateCompleteness walks the fixed 38-attribute list and reports which
// fields a mapping pass managed to fill. Deterministic, no side effects.
func EvaluateCompleteness(in *models.MLModelInput) models.CompletionStatus {
	status := models.CompletionStatus{
		FilledFields:  make([]string, 0, len(models.MLInputFieldNames)),
		MissingFields: make([]string, 0),
	}
	if in == nil {
		status.MissingFields = append(status.MissingFields, models.MLInputFieldNames...)
		return status
	}

	for _, name := range models.MLInputFieldNames {
		if _, ok := in.FieldValue(name); ok {
			status.FilledFields = append(status.FilledFields, name)
		} else {
			status.MissingFields = append(status.MissingFields, name)
		}
	}

	total := len(models.MLInputFieldNames)
	status.CompletionPercentage = int(math.Round(float64(len(status.FilledFields)) / float64(total) * 100))
	return status
}
