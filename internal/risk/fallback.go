// Package risk implements the deterministic rule-based estimator used when
// the external risk model cannot run or its input is incomplete. It never
// fails: every questionnaire field has a documented default.
package risk

import (
	"math"
	"time"

	"insurisk/internal/mapper"
	"insurisk/internal/models"
)

const (
	baseRiskScore = 30
	minRiskScore  = 5
	maxRiskScore  = 95

	// Canonical coverage default when the applicant specified none. The
	// premium formula divides coverage by 10000.
	defaultCoverageAmount = 500000

	defaultHeightCm = 170
	defaultWeightKg = 70
)

// Estimate computes a rule-based risk assessment directly from questionnaire
// data. Point system: base 30, then age bands, +8 per medical condition,
// smoking, exercise and stress adjustments; final score clamped to [5,95].
func Estimate(q *models.QuestionnaireData) *models.RiskAssessment {
	if q == nil {
		q = &models.QuestionnaireData{}
	}

	score := baseRiskScore
	score += agePoints(q)
	score += len(q.Health.MedicalConditions) * 8
	score += smokingPoints(q)
	score += exercisePoints(q)
	score += stressPoints(q)

	if score < minRiskScore {
		score = minRiskScore
	}
	if score > maxRiskScore {
		score = maxRiskScore
	}

	coverage := defaultCoverageAmount
	if q.Financial.CoverageAmount != nil {
		coverage = int(*q.Financial.CoverageAmount)
	}

	return &models.RiskAssessment{
		RiskScore:       score,
		RiskCategory:    Categorize(score),
		MonthlyPremium:  MonthlyPremium(score, float64(coverage)),
		BMI:             roundTo1(bmi(q)),
		BMICategory:     BMICategory(bmi(q)),
		HasDiabetes:     diabetesFlag(q),
		HasHypertension: hypertensionFlag(q),
	}
}

// Categorize maps a risk score onto the three-category scale:
// <40 Low, 40-70 Medium, >70 High.
func Categorize(score int) string {
	switch {
	case score < 40:
		return "Low"
	case score <= 70:
		return "Medium"
	default:
		return "High"
	}
}

// MonthlyPremium is the fallback premium formula:
// round((score*0.8 + coverage/10000) * 1.2).
func MonthlyPremium(score int, coverage float64) float64 {
	return math.Round((float64(score)*0.8 + coverage/10000) * 1.2)
}

// BMICategory buckets a BMI value: <18.5 Underweight, <25 Normal,
// <30 Overweight, else Obese.
func BMICategory(v float64) string {
	switch {
	case v < 18.5:
		return "Underweight"
	case v < 25:
		return "Normal"
	case v < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// The age bands overlap on purpose: the else-if ordering means an applicant
// over 65 gets +20 only, not +20 and +10.
func agePoints(q *models.QuestionnaireData) int {
	if q.Demographics.DateOfBirth == nil {
		return 0
	}
	age, ok := mapper.AgeFromDOB(*q.Demographics.DateOfBirth, time.Now())
	if !ok {
		return 0
	}

	if age > 65 {
		return 20
	} else if age > 50 {
		return 10
	} else if age < 25 {
		return 5
	}
	return 0
}

func smokingPoints(q *models.QuestionnaireData) int {
	if q.Health.SmokingStatus == nil {
		return 0
	}
	switch mapper.MatchKeyword(mapper.SmokingGroups, *q.Health.SmokingStatus, "Never") {
	case "Current":
		return 25
	case "Former":
		return 10
	}
	return 0
}

func exercisePoints(q *models.QuestionnaireData) int {
	days := mapper.DefaultValues.ExerciseDaysPerWeek
	if q.Lifestyle.ExerciseDaysPerWeek != nil {
		days = *q.Lifestyle.ExerciseDaysPerWeek
	}

	if days < 2 {
		return 8
	} else if days >= 4 {
		return -5
	}
	return 0
}

func stressPoints(q *models.QuestionnaireData) int {
	level := mapper.DefaultValues.StressLevel
	if q.Lifestyle.StressLevel != nil {
		level = *q.Lifestyle.StressLevel
	}

	if level > 7 {
		return 6
	} else if level < 4 {
		return -3
	}
	return 0
}

func bmi(q *models.QuestionnaireData) float64 {
	heightCm := float64(defaultHeightCm)
	if q.Health.Height != nil {
		heightCm = mapper.NormalizeHeight(*q.Health.Height, unitOrEmpty(q.Health.HeightUnit))
	}
	weightKg := float64(defaultWeightKg)
	if q.Health.Weight != nil {
		weightKg = mapper.NormalizeWeight(*q.Health.Weight, unitOrEmpty(q.Health.WeightUnit))
	}

	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

func diabetesFlag(q *models.QuestionnaireData) bool {
	if q.Health.FastingBloodSugar != nil && *q.Health.FastingBloodSugar >= 126 {
		return true
	}
	return mapper.ContainsAnyKeyword(q.Health.MedicalConditions, mapper.DiabetesKeywords)
}

func hypertensionFlag(q *models.QuestionnaireData) bool {
	sys, dia := bloodPressure(q)
	if sys >= 140 || dia >= 90 {
		return true
	}
	return mapper.ContainsAnyKeyword(q.Health.MedicalConditions, mapper.HypertensionKeywords)
}

func bloodPressure(q *models.QuestionnaireData) (systolic, diastolic int) {
	if q.Health.BloodPressureSplit != nil {
		return q.Health.BloodPressureSplit.Systolic, q.Health.BloodPressureSplit.Diastolic
	}
	if q.Health.BloodPressure != nil {
		return mapper.ParseBloodPressure(*q.Health.BloodPressure)
	}
	return mapper.DefaultValues.BPSystolic, mapper.DefaultValues.BPDiastolic
}

func unitOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
