package risk

import (
	"testing"
	"time"

	"insurisk/internal/models"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string   { return &s }
func intp(i int) *int         { return &i }
func fltp(f float64) *float64 { return &f }

func dobYearsAgo(years int) *string {
	// One extra month back keeps the age stable around year boundaries.
	dob := time.Now().AddDate(-years, -1, 0).Format("2006-01-02")
	return &dob
}

func TestEstimateHighRiskProfile(t *testing.T) {
	// Age 45 (no band), two conditions, current smoker, low exercise,
	// high stress: 30 + 16 + 25 + 8 + 6 = 85.
	q := &models.QuestionnaireData{}
	q.Demographics.DateOfBirth = dobYearsAgo(45)
	q.Health.MedicalConditions = []string{"diabetes", "hypertension"}
	q.Health.SmokingStatus = strp("current")
	q.Lifestyle.ExerciseDaysPerWeek = intp(1)
	q.Lifestyle.StressLevel = intp(8)

	result := Estimate(q)
	assert.Equal(t, 85, result.RiskScore)
	assert.Equal(t, "High", result.RiskCategory)
	assert.True(t, result.HasDiabetes)
	assert.True(t, result.HasHypertension)
}

func TestEstimateLowRiskProfile(t *testing.T) {
	// Age 30, no conditions, never smoked, active, low stress:
	// 30 - 5 - 3 = 22.
	q := &models.QuestionnaireData{}
	q.Demographics.DateOfBirth = dobYearsAgo(30)
	q.Health.SmokingStatus = strp("never")
	q.Lifestyle.ExerciseDaysPerWeek = intp(5)
	q.Lifestyle.StressLevel = intp(3)

	result := Estimate(q)
	assert.Equal(t, 22, result.RiskScore)
	assert.Equal(t, "Low", result.RiskCategory)
	assert.False(t, result.HasDiabetes)
	assert.False(t, result.HasHypertension)
}

func TestEstimateAgeBands(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		expected int
	}{
		{"over 65 gets the senior band only", 70, 30 + 20},
		{"over 50", 55, 30 + 10},
		{"under 25", 22, 30 + 5},
		{"middle band adds nothing", 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &models.QuestionnaireData{}
			q.Demographics.DateOfBirth = dobYearsAgo(tt.years)
			assert.Equal(t, tt.expected, Estimate(q).RiskScore)
		})
	}
}

func TestEstimateScoreIsClamped(t *testing.T) {
	q := &models.QuestionnaireData{}
	q.Demographics.DateOfBirth = dobYearsAgo(70)
	q.Health.MedicalConditions = []string{
		"diabetes", "hypertension", "heart disease", "asthma",
		"thyroid", "cancer", "kidney disease",
	}
	q.Health.SmokingStatus = strp("current")
	q.Lifestyle.ExerciseDaysPerWeek = intp(0)
	q.Lifestyle.StressLevel = intp(10)

	result := Estimate(q)
	assert.Equal(t, 95, result.RiskScore)
	assert.Equal(t, "High", result.RiskCategory)
}

func TestEstimateNeverFails(t *testing.T) {
	assert.NotNil(t, Estimate(nil))
	assert.NotNil(t, Estimate(&models.QuestionnaireData{}))
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "Low", Categorize(39))
	assert.Equal(t, "Medium", Categorize(40))
	assert.Equal(t, "Medium", Categorize(70))
	assert.Equal(t, "High", Categorize(71))
}

func TestMonthlyPremium(t *testing.T) {
	// round((score*0.8 + coverage/10000) * 1.2)
	assert.Equal(t, 142.0, MonthlyPremium(85, 500000))
	assert.Equal(t, 81.0, MonthlyPremium(22, 500000))
	assert.Equal(t, 1248.0, MonthlyPremium(50, 10000000))
}

func TestEstimateDefaultsCoverageForPremium(t *testing.T) {
	q := &models.QuestionnaireData{}
	q.Demographics.DateOfBirth = dobYearsAgo(30)

	// Score 30, default coverage 500000: round((24+50)*1.2) = 89.
	result := Estimate(q)
	assert.Equal(t, 89.0, result.MonthlyPremium)

	q.Financial.CoverageAmount = fltp(1000000)
	result = Estimate(q)
	assert.Equal(t, 149.0, result.MonthlyPremium)
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(18.4))
	assert.Equal(t, "Normal", BMICategory(22))
	assert.Equal(t, "Overweight", BMICategory(27))
	assert.Equal(t, "Obese", BMICategory(31))
}

func TestEstimateBMIFromHeightWeight(t *testing.T) {
	q := &models.QuestionnaireData{}
	q.Health.Height = fltp(172)
	q.Health.HeightUnit = strp("cm")
	q.Health.Weight = fltp(68)
	q.Health.WeightUnit = strp("kg")

	result := Estimate(q)
	assert.Equal(t, 23.0, result.BMI)
	assert.Equal(t, "Normal", result.BMICategory)
}

func TestDiabetesFlagFromBloodSugar(t *testing.T) {
	q := &models.QuestionnaireData{}
	q.Health.FastingBloodSugar = intp(126)
	assert.True(t, Estimate(q).HasDiabetes)

	q.Health.FastingBloodSugar = intp(125)
	assert.False(t, Estimate(q).HasDiabetes)
}

func TestHypertensionFlagFromBloodPressure(t *testing.T) {
	q := &models.QuestionnaireData{}
	q.Health.BloodPressure = strp("145/85")
	assert.True(t, Estimate(q).HasHypertension)

	q.Health.BloodPressure = strp("120/80")
	assert.False(t, Estimate(q).HasHypertension)

	q.Health.BloodPressure = nil
	q.Health.BloodPressureSplit = &models.BloodPressureReading{Systolic: 120, Diastolic: 95}
	assert.True(t, Estimate(q).HasHypertension)
}
