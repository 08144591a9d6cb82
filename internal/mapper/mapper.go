package mapper

import (
	"strconv"
	"strings"
	"time"

	"insurisk/internal/models"
)

// Map translates free-form questionnaire data into the fixed 38-attribute
// schema the external risk model consumes. It never fails: absent or
// ambiguous data either resolves through the defaults table or stays unset
// for the completeness evaluator to flag.
func Map(q *models.QuestionnaireData) *models.MLModelInput {
	in := &models.MLModelInput{}
	if q == nil {
		q = &models.QuestionnaireData{}
	}

	mapDemographics(&q.Demographics, in)
	mapFinancial(&q.Financial, in)
	mapHealth(&q.Health, in)
	mapLifestyle(&q.Lifestyle, in)

	return in
}

func mapDemographics(d *models.DemographicsSection, in *models.MLModelInput) {
	if d.DateOfBirth != nil {
		if age, ok := AgeFromDOB(*d.DateOfBirth, time.Now()); ok {
			in.Age = intPtr(age)
		}
	}
	if d.Gender != nil {
		in.Gender = strPtr(MatchKeyword(GenderGroups, *d.Gender, DefaultValues.Gender))
	}
	if d.MaritalStatus != nil {
		in.MaritalStatus = strPtr(MatchKeyword(MaritalGroups, *d.MaritalStatus, DefaultValues.MaritalStatus))
	}
	if d.Education != nil {
		in.Education = strPtr(MatchSubstring(EducationGroups, *d.Education, DefaultValues.Education))
	}
	if d.Occupation != nil {
		in.Occupation = strPtr(MatchSubstring(OccupationGroups, *d.Occupation, DefaultValues.Occupation))
	}
	if d.City != nil {
		in.City = strPtr(MatchSubstring(CityGroups, *d.City, DefaultValues.City))
		in.RegionType = strPtr(MapRegionType(*d.City))
	}
	if d.Dependents != nil {
		in.Dependents = intPtr(clampInt(*d.Dependents, 0, 10))
	} else {
		in.Dependents = intPtr(DefaultValues.Dependents)
	}
	if d.IsSoleProvider != nil {
		in.IsSoleProvider = boolPtr(*d.IsSoleProvider)
	}
}

func mapFinancial(f *models.FinancialSection, in *models.MLModelInput) {
	if f.AnnualIncome != nil {
		in.AnnualIncomeRange = strPtr(MapIncomeRange(*f.AnnualIncome))
	}
	if f.InvestmentCapacity != nil {
		in.InvestmentCapacity = strPtr(MatchKeyword(InvestmentGroups, *f.InvestmentCapacity, DefaultValues.InvestmentCapacity))
	}
	if f.CoverageAmount != nil {
		in.CoverageAmount = floatPtr(clampFloat(*f.CoverageAmount, 50000, 10000000))
	} else {
		in.CoverageAmount = floatPtr(DefaultValues.CoverageAmount)
	}
	if f.PolicyTermYears != nil {
		in.PolicyTermYears = intPtr(clampInt(*f.PolicyTermYears, 5, 40))
	} else {
		in.PolicyTermYears = intPtr(DefaultValues.PolicyTermYears)
	}
	if f.MonthlyPremiumBudget != nil {
		in.MonthlyPremiumBudget = floatPtr(clampFloat(*f.MonthlyPremiumBudget, 100, 100000))
	} else {
		in.MonthlyPremiumBudget = floatPtr(DefaultValues.MonthlyPremiumBudget)
	}
	if f.HasExistingCoverage != nil {
		in.HasExistingCoverage = boolPtr(*f.HasExistingCoverage)
	}
	if f.HasDebt != nil {
		in.HasDebt = boolPtr(*f.HasDebt)
	}
	if f.HasSavings != nil {
		in.HasSavings = boolPtr(*f.HasSavings)
	}
	if f.InsuranceType != nil {
		in.InsuranceType = strPtr(MatchSubstring(InsuranceTypeGroups, *f.InsuranceType, DefaultValues.InsuranceType))
	}
}

func mapHealth(h *models.HealthSection, in *models.MLModelInput) {
	if h.Height != nil {
		in.HeightCm = floatPtr(NormalizeHeight(*h.Height, strOrEmpty(h.HeightUnit)))
	}
	if h.Weight != nil {
		in.WeightKg = floatPtr(NormalizeWeight(*h.Weight, strOrEmpty(h.WeightUnit)))
	}

	if h.BloodPressureSplit != nil {
		in.BPSystolic = intPtr(clampInt(h.BloodPressureSplit.Systolic, 80, 220))
		in.BPDiastolic = intPtr(clampInt(h.BloodPressureSplit.Diastolic, 50, 140))
	} else if h.BloodPressure != nil {
		sys, dia := ParseBloodPressure(*h.BloodPressure)
		in.BPSystolic = intPtr(sys)
		in.BPDiastolic = intPtr(dia)
	}

	if h.RestingHeartRate != nil {
		in.RestingHeartRate = intPtr(clampInt(*h.RestingHeartRate, 40, 120))
	} else {
		in.RestingHeartRate = intPtr(DefaultValues.RestingHeartRate)
	}
	if h.FastingBloodSugar != nil {
		in.FastingBloodSugar = intPtr(clampInt(*h.FastingBloodSugar, 60, 300))
	} else {
		in.FastingBloodSugar = intPtr(DefaultValues.FastingBloodSugar)
	}

	if h.SmokingStatus != nil {
		status := MatchKeyword(SmokingGroups, *h.SmokingStatus, DefaultValues.SmokingStatus)
		in.SmokingStatus = strPtr(status)
		years := DefaultValues.YearsSmoking
		if h.YearsSmoking != nil {
			years = clampInt(*h.YearsSmoking, 0, 50)
		}
		if status == "Never" {
			years = 0
		}
		in.YearsSmoking = intPtr(years)
	}
	if h.AlcoholConsumption != nil {
		in.AlcoholConsumption = strPtr(MatchKeyword(AlcoholGroups, *h.AlcoholConsumption, DefaultValues.AlcoholConsumption))
	}

	if h.MedicalConditions != nil {
		in.HasHeartDisease = boolPtr(ContainsAnyKeyword(h.MedicalConditions, HeartDiseaseKeywords))
		in.HasAsthma = boolPtr(ContainsAnyKeyword(h.MedicalConditions, AsthmaKeywords))
		in.HasThyroidDisorder = boolPtr(ContainsAnyKeyword(h.MedicalConditions, ThyroidKeywords))
		in.HasCancerHistory = boolPtr(ContainsAnyKeyword(h.MedicalConditions, CancerKeywords))
		in.HasKidneyDisease = boolPtr(ContainsAnyKeyword(h.MedicalConditions, KidneyKeywords))
	}
}

func mapLifestyle(l *models.LifestyleSection, in *models.MLModelInput) {
	if l.ExerciseDaysPerWeek != nil {
		in.ExerciseDaysPerWeek = intPtr(clampInt(*l.ExerciseDaysPerWeek, 0, 7))
	} else {
		in.ExerciseDaysPerWeek = intPtr(DefaultValues.ExerciseDaysPerWeek)
	}
	if l.SleepHours != nil {
		in.SleepHours = floatPtr(clampFloat(*l.SleepHours, 3, 12))
	} else {
		in.SleepHours = floatPtr(DefaultValues.SleepHours)
	}
	if l.StressLevel != nil {
		in.StressLevel = intPtr(clampInt(*l.StressLevel, 1, 10))
	} else {
		in.StressLevel = intPtr(DefaultValues.StressLevel)
	}

	if l.DietFrequency != nil {
		if raw, ok := l.DietFrequency["junk_food"]; ok {
			in.JunkFoodFrequency = strPtr(MatchKeyword(DietFrequencyGroups, raw, DefaultValues.DietFrequency))
		}
		if raw, ok := l.DietFrequency["fruits_veggies"]; ok {
			in.FruitsVeggiesFrequency = strPtr(MatchKeyword(DietFrequencyGroups, raw, DefaultValues.DietFrequency))
		}
		if raw, ok := l.DietFrequency["non_veg"]; ok {
			in.NonVegFrequency = strPtr(MatchKeyword(DietFrequencyGroups, raw, DefaultValues.DietFrequency))
		}
	}
}

// AgeFromDOB derives age in whole years at the reference time, clamped to
// the schema's [18,70] range. Accepts RFC3339 or YYYY-MM-DD.
func AgeFromDOB(dob string, now time.Time) (int, bool) {
	dobTime, err := time.Parse(time.RFC3339, dob)
	if err != nil {
		dobTime, err = time.Parse("2006-01-02", dob)
		if err != nil {
			return 0, false
		}
	}

	age := now.Year() - dobTime.Year()
	if now.YearDay() < dobTime.YearDay() {
		age--
	}
	return clampInt(age, 18, 70), true
}

// MapRegionType classifies a raw city/location string against the curated
// metro and tier-1 lists.
func MapRegionType(rawCity string) string {
	lower := strings.ToLower(rawCity)
	for _, kw := range MetroKeywords {
		if strings.Contains(lower, kw) {
			return "Metro"
		}
	}
	for _, kw := range Tier1Keywords {
		if strings.Contains(lower, kw) {
			return "Tier-1"
		}
	}
	return DefaultValues.RegionType
}

// MapIncomeRange buckets annual income into the three ordered bands of the
// external schema.
func MapIncomeRange(annualIncome float64) string {
	switch {
	case annualIncome < 500000:
		return "<5L"
	case annualIncome < 1000000:
		return "5L-10L"
	default:
		return ">10L"
	}
}

// NormalizeHeight converts to centimeters and clamps to the schema bounds.
// Values under 10 with no explicit unit are treated as feet.
func NormalizeHeight(value float64, unit string) float64 {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "ft" || u == "feet" || (u == "" && value < 10) {
		value = value * 30.48
	}
	return clampFloat(value, 100, 220)
}

// NormalizeWeight converts to kilograms and clamps to the schema bounds.
func NormalizeWeight(value float64, unit string) float64 {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "lb" || u == "lbs" || u == "pounds" {
		value = value * 0.453592
	}
	return clampFloat(value, 30, 200)
}

// ParseBloodPressure parses a "120/80"-style string. An unparseable value
// resolves to the default reading rather than failing.
func ParseBloodPressure(raw string) (systolic, diastolic int) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) == 2 {
		sys, errS := strconv.Atoi(strings.TrimSpace(parts[0]))
		dia, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errS == nil && errD == nil {
			return clampInt(sys, 80, 220), clampInt(dia, 50, 140)
		}
	}
	return DefaultValues.BPSystolic, DefaultValues.BPDiastolic
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
