package ml

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"insurisk/internal/mapper"
	"insurisk/internal/models"
)

func strp(s string) *string   { return &s }
func intp(i int) *int         { return &i }
func fltp(f float64) *float64 { return &f }
func boolp(b bool) *bool      { return &b }

// fullInput returns a record with every attribute set to an in-range value.
func fullInput() *models.MLModelInput {
	return &models.MLModelInput{
		Age:            intp(40),
		Gender:         strp("Female"),
		MaritalStatus:  strp("Married"),
		Education:      strp("Graduate"),
		Occupation:     strp("Salaried"),
		City:           strp("Pune"),
		RegionType:     strp("Tier-1"),
		Dependents:     intp(2),
		IsSoleProvider: boolp(true),

		AnnualIncomeRange:    strp("5L-10L"),
		InvestmentCapacity:   strp("Medium"),
		CoverageAmount:       fltp(500000),
		PolicyTermYears:      intp(20),
		MonthlyPremiumBudget: fltp(2000),
		HasExistingCoverage:  boolp(false),
		HasDebt:              boolp(true),
		HasSavings:           boolp(true),
		InsuranceType:        strp("Term Life"),

		HeightCm:           fltp(165),
		WeightKg:           fltp(62),
		BPSystolic:         intp(120),
		BPDiastolic:        intp(80),
		RestingHeartRate:   intp(72),
		FastingBloodSugar:  intp(90),
		SmokingStatus:      strp("Never"),
		YearsSmoking:       intp(0),
		AlcoholConsumption: strp("Occasional"),
		HasHeartDisease:    boolp(false),
		HasAsthma:          boolp(false),
		HasThyroidDisorder: boolp(false),
		HasCancerHistory:   boolp(false),
		HasKidneyDisease:   boolp(false),

		ExerciseDaysPerWeek:    intp(3),
		SleepHours:             fltp(7),
		StressLevel:            intp(5),
		JunkFoodFrequency:      strp("Weekly"),
		FruitsVeggiesFrequency: strp("Daily"),
		NonVegFrequency:        strp("Rarely"),
	}
}

func TestValidateInputFullRecordPasses(t *testing.T) {
	assert.Nil(t, ValidateInput(fullInput()))
}

func TestValidateInputEmptyRecordMissesEverything(t *testing.T) {
	verr := ValidateInput(&models.MLModelInput{})

	assert.NotNil(t, verr)
	assert.Len(t, verr.MissingFields, len(models.MLInputFieldNames))
	assert.Empty(t, verr.InvalidFields)
	assert.Equal(t, models.MLInputFieldNames, verr.MissingFields)
}

func TestValidateInputOutOfRangeValues(t *testing.T) {
	in := fullInput()
	in.Age = intp(15)
	in.Gender = strp("Unknown")
	in.CoverageAmount = fltp(10)
	in.StressLevel = intp(11)

	verr := ValidateInput(in)

	assert.NotNil(t, verr)
	assert.Empty(t, verr.MissingFields)
	assert.ElementsMatch(t,
		[]string{"age", "gender", "coverage_amount", "stress_level"},
		verr.InvalidFields)
}

func TestValidateInputMixedMissingAndInvalid(t *testing.T) {
	in := fullInput()
	in.SmokingStatus = nil
	in.BPSystolic = intp(300)

	verr := ValidateInput(in)

	assert.NotNil(t, verr)
	assert.Equal(t, []string{"smoking_status"}, verr.MissingFields)
	assert.Equal(t, []string{"bp_systolic"}, verr.InvalidFields)
	assert.Contains(t, verr.Error(), "smoking_status")
	assert.Contains(t, verr.Error(), "bp_systolic")
}

func TestValidateInputAcceptsRareInvestmentBucket(t *testing.T) {
	in := fullInput()
	in.InvestmentCapacity = strp("RARE")
	assert.Nil(t, ValidateInput(in))

	in.InvestmentCapacity = strp("High")
	verr := ValidateInput(in)
	assert.NotNil(t, verr)
	assert.Equal(t, []string{"investment_capacity"}, verr.InvalidFields)
}

// TestMappedQuestionnairePassesValidation feeds a complete questionnaire
// through the mapper, including imperial units and the legacy "high"
// investment label, and asserts the result satisfies every field rule.
func TestMappedQuestionnairePassesValidation(t *testing.T) {
	dob := time.Now().AddDate(-40, -1, 0).Format("2006-01-02")
	q := &models.QuestionnaireData{
		Demographics: models.DemographicsSection{
			DateOfBirth:    strp(dob),
			Gender:         strp("female"),
			MaritalStatus:  strp("married"),
			Education:      strp("Bachelor degree"),
			City:           strp("Pune"),
			Occupation:     strp("software engineer"),
			Dependents:     intp(2),
			IsSoleProvider: boolp(true),
		},
		Health: models.HealthSection{
			Height:             fltp(5.5),
			HeightUnit:         strp("ft"),
			Weight:             fltp(150),
			WeightUnit:         strp("lb"),
			BloodPressure:      strp("120/80"),
			RestingHeartRate:   intp(72),
			FastingBloodSugar:  intp(95),
			SmokingStatus:      strp("never"),
			YearsSmoking:       intp(0),
			AlcoholConsumption: strp("occasional"),
			MedicalConditions:  []string{},
		},
		Lifestyle: models.LifestyleSection{
			ExerciseDaysPerWeek: intp(3),
			SleepHours:          fltp(7),
			StressLevel:         intp(5),
			DietFrequency: map[string]string{
				"junk_food":      "weekly",
				"fruits_veggies": "daily",
				"non_veg":        "rarely",
			},
		},
		Financial: models.FinancialSection{
			AnnualIncome:         fltp(850000),
			CoverageAmount:       fltp(500000),
			MonthlyPremiumBudget: fltp(2500),
			PolicyTermYears:      intp(20),
			HasExistingCoverage:  boolp(false),
			HasDebt:              boolp(false),
			HasSavings:           boolp(true),
			InvestmentCapacity:   strp("high"),
			InsuranceType:        strp("term life"),
		},
	}

	in := mapper.Map(q)
	assert.Nil(t, ValidateInput(in))

	assert.InDelta(t, 167.64, *in.HeightCm, 0.01)
	assert.InDelta(t, 68.04, *in.WeightKg, 0.01)
	assert.Equal(t, "RARE", *in.InvestmentCapacity)
}

func TestValidateInputRangeBoundaries(t *testing.T) {
	in := fullInput()
	in.Age = intp(18)
	in.SleepHours = fltp(12)
	in.ExerciseDaysPerWeek = intp(0)
	assert.Nil(t, ValidateInput(in))

	in.Age = intp(71)
	verr := ValidateInput(in)
	assert.NotNil(t, verr)
	assert.Equal(t, []string{"age"}, verr.InvalidFields)
}
