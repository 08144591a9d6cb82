package mapper

// Defaults is the single declarative table of values substituted when a
// questionnaire field is absent. "What happens when field X is missing" is
// answered here and nowhere else.
type Defaults struct {
	RestingHeartRate     int
	FastingBloodSugar    int
	ExerciseDaysPerWeek  int
	SleepHours           float64
	StressLevel          int
	Dependents           int
	CoverageAmount       float64
	PolicyTermYears      int
	MonthlyPremiumBudget float64
	YearsSmoking         int
	BPSystolic           int
	BPDiastolic          int

	// Fallback buckets for keyword-mapped enums when the source text is
	// present but unrecognized.
	Gender             string
	MaritalStatus      string
	Education          string
	City               string
	RegionType         string
	InvestmentCapacity string
	SmokingStatus      string
	AlcoholConsumption string
	Occupation         string
	InsuranceType      string
	DietFrequency      string
}

var DefaultValues = Defaults{
	RestingHeartRate:     72,
	FastingBloodSugar:    90,
	ExerciseDaysPerWeek:  3,
	SleepHours:           7,
	StressLevel:          5,
	Dependents:           0,
	CoverageAmount:       500000,
	PolicyTermYears:      20,
	MonthlyPremiumBudget: 2000,
	YearsSmoking:         0,
	BPSystolic:           120,
	BPDiastolic:          80,

	Gender:             "Other",
	MaritalStatus:      "Single",
	Education:          "Other",
	City:               "Mumbai",
	RegionType:         "Tier-2",
	InvestmentCapacity: "Medium",
	SmokingStatus:      "Never",
	AlcoholConsumption: "Never",
	Occupation:         "Salaried",
	InsuranceType:      "Term Life",
	DietFrequency:      "Weekly",
}
