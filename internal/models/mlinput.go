package models

// MLModelInput is the fixed 38-attribute record consumed by the external risk
// model. Fields are pointers so a mapping pass can leave unknown attributes
// unset; the completeness evaluator treats nil as missing. The record is only
// usable by the prediction client once all 38 fields are present and
// individually valid.
type MLModelInput struct {
	// Demographic
	Age            *int    `json:"age,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	MaritalStatus  *string `json:"marital_status,omitempty"`
	Education      *string `json:"education,omitempty"`
	Occupation     *string `json:"occupation,omitempty"`
	City           *string `json:"city,omitempty"`
	RegionType     *string `json:"region_type,omitempty"`
	Dependents     *int    `json:"dependents,omitempty"`
	IsSoleProvider *bool   `json:"is_sole_provider,omitempty"`

	// Financial
	AnnualIncomeRange    *string  `json:"annual_income_range,omitempty"`
	InvestmentCapacity   *string  `json:"investment_capacity,omitempty"`
	CoverageAmount       *float64 `json:"coverage_amount,omitempty"`
	PolicyTermYears      *int     `json:"policy_term_years,omitempty"`
	MonthlyPremiumBudget *float64 `json:"monthly_premium_budget,omitempty"`
	HasExistingCoverage  *bool    `json:"has_existing_coverage,omitempty"`
	HasDebt              *bool    `json:"has_debt,omitempty"`
	HasSavings           *bool    `json:"has_savings,omitempty"`
	InsuranceType        *string  `json:"insurance_type,omitempty"`

	// Health
	HeightCm           *float64 `json:"height_cm,omitempty"`
	WeightKg           *float64 `json:"weight_kg,omitempty"`
	BPSystolic         *int     `json:"bp_systolic,omitempty"`
	BPDiastolic        *int     `json:"bp_diastolic,omitempty"`
	RestingHeartRate   *int     `json:"resting_heart_rate,omitempty"`
	FastingBloodSugar  *int     `json:"fasting_blood_sugar,omitempty"`
	SmokingStatus      *string  `json:"smoking_status,omitempty"`
	YearsSmoking       *int     `json:"years_smoking,omitempty"`
	AlcoholConsumption *string  `json:"alcohol_consumption,omitempty"`
	HasHeartDisease    *bool    `json:"has_heart_disease,omitempty"`
	HasAsthma          *bool    `json:"has_asthma,omitempty"`
	HasThyroidDisorder *bool    `json:"has_thyroid_disorder,omitempty"`
	HasCancerHistory   *bool    `json:"has_cancer_history,omitempty"`
	HasKidneyDisease   *bool    `json:"has_kidney_disease,omitempty"`

	// Lifestyle
	ExerciseDaysPerWeek    *int     `json:"exercise_days_per_week,omitempty"`
	SleepHours             *float64 `json:"sleep_hours,omitempty"`
	StressLevel            *int     `json:"stress_level,omitempty"`
	JunkFoodFrequency      *string  `json:"junk_food_frequency,omitempty"`
	FruitsVeggiesFrequency *string  `json:"fruits_veggies_frequency,omitempty"`
	NonVegFrequency        *string  `json:"non_veg_frequency,omitempty"`
}

// MLInputFieldNames is the canonical ordering of the 38 required attributes.
// The completeness evaluator and the prediction client validator both iterate
// this list, so completeness percentages and validation errors always agree
// on field naming.
var MLInputFieldNames = []string{
	"age",
	"gender",
	"marital_status",
	"education",
	"occupation",
	"city",
	"region_type",
	"dependents",
	"is_sole_provider",
	"annual_income_range",
	"investment_capacity",
	"coverage_amount",
	"policy_term_years",
	"monthly_premium_budget",
	"has_existing_coverage",
	"has_debt",
	"has_savings",
	"insurance_type",
	"height_cm",
	"weight_kg",
	"bp_systolic",
	"bp_diastolic",
	"resting_heart_rate",
	"fasting_blood_sugar",
	"smoking_status",
	"years_smoking",
	"alcohol_consumption",
	"has_heart_disease",
	"has_asthma",
	"has_thyroid_disorder",
	"has_cancer_history",
	"has_kidney_disease",
	"exercise_days_per_week",
	"sleep_hours",
	"stress_level",
	"junk_food_frequency",
	"fruits_veggies_frequency",
	"non_veg_frequency",
}

// FieldValue returns the value behind the named attribute and whether it is
// set. Unknown names report as unset.
func (in *MLModelInput) FieldValue(name string) (interface{}, bool) {
	switch name {
	case "age":
		return deref(in.Age)
	case "gender":
		return deref(in.Gender)
	case "marital_status":
		return deref(in.MaritalStatus)
	case "education":
		return deref(in.Education)
	case "occupation":
		return deref(in.Occupation)
	case "city":
		return deref(in.City)
	case "region_type":
		return deref(in.RegionType)
	case "dependents":
		return deref(in.Dependents)
	case "is_sole_provider":
		return deref(in.IsSoleProvider)
	case "annual_income_range":
		return deref(in.AnnualIncomeRange)
	case "investment_capacity":
		return deref(in.InvestmentCapacity)
	case "coverage_amount":
		return deref(in.CoverageAmount)
	case "policy_term_years":
		return deref(in.PolicyTermYears)
	case "monthly_premium_budget":
		return deref(in.MonthlyPremiumBudget)
	case "has_existing_coverage":
		return deref(in.HasExistingCoverage)
	case "has_debt":
		return deref(in.HasDebt)
	case "has_savings":
		return deref(in.HasSavings)
	case "insurance_type":
		return deref(in.InsuranceType)
	case "height_cm":
		return deref(in.HeightCm)
	case "weight_kg":
		return deref(in.WeightKg)
	case "bp_systolic":
		return deref(in.BPSystolic)
	case "bp_diastolic":
		return deref(in.BPDiastolic)
	case "resting_heart_rate":
		return deref(in.RestingHeartRate)
	case "fasting_blood_sugar":
		return deref(in.FastingBloodSugar)
	case "smoking_status":
		return deref(in.SmokingStatus)
	case "years_smoking":
		return deref(in.YearsSmoking)
	case "alcohol_consumption":
		return deref(in.AlcoholConsumption)
	case "has_heart_disease":
		return deref(in.HasHeartDisease)
	case "has_asthma":
		return deref(in.HasAsthma)
	case "has_thyroid_disorder":
		return deref(in.HasThyroidDisorder)
	case "has_cancer_history":
		return deref(in.HasCancerHistory)
	case "has_kidney_disease":
		return deref(in.HasKidneyDisease)
	case "exercise_days_per_week":
		return deref(in.ExerciseDaysPerWeek)
	case "sleep_hours":
		return deref(in.SleepHours)
	case "stress_level":
		return deref(in.StressLevel)
	case "junk_food_frequency":
		return deref(in.JunkFoodFrequency)
	case "fruits_veggies_frequency":
		return deref(in.FruitsVeggiesFrequency)
	case "non_veg_frequency":
		return deref(in.NonVegFrequency)
	}
	return nil, false
}

func deref[T any](p *T) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// CompletionStatus reports how much of the 38-field schema a mapping pass
// managed to fill. It is recomputed on every pass and never persisted on
// its own.
type CompletionStatus struct {
	CompletionPercentage int      `json:"completion_percentage"`
	FilledFields         []string `json:"filled_fields"`
	MissingFields        []string `json:"missing_fields"`
}
