package mapper

import (
	"testing"

	"insurisk/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCompletenessNilInput(t *testing.T) {
	status := EvaluateCompleteness(nil)
	assert.Equal(t, 0, status.CompletionPercentage)
	assert.Len(t, status.MissingFields, len(models.MLInputFieldNames))
	assert.Empty(t, status.FilledFields)
}

func TestEvaluateCompletenessEmptyQuestionnaire(t *testing.T) {
	// An empty questionnaire still yields the nine numeric defaults.
	status := EvaluateCompleteness(Map(&models.QuestionnaireData{}))
	assert.Len(t, status.FilledFields, 9)
	assert.Equal(t, 24, status.CompletionPercentage)
	assert.Contains(t, status.MissingFields, "age")
	assert.Contains(t, status.MissingFields, "smoking_status")
}

func TestEvaluateCompletenessThirtyOfThirtyEight(t *testing.T) {
	in := Map(fullQuestionnaire())
	in.Gender = nil
	in.MaritalStatus = nil
	in.Education = nil
	in.City = nil
	in.RegionType = nil
	in.AnnualIncomeRange = nil
	in.InvestmentCapacity = nil
	in.InsuranceType = nil

	status := EvaluateCompleteness(in)
	assert.Len(t, status.FilledFields, 30)
	assert.Equal(t, 79, status.CompletionPercentage)
}

func TestEvaluateCompletenessIsDeterministic(t *testing.T) {
	in := Map(fullQuestionnaire())
	first := EvaluateCompleteness(in)
	second := EvaluateCompleteness(in)
	assert.Equal(t, first, second)
}
