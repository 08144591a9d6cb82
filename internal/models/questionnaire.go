package models

import (
	"time"

	"gorm.io/gorm"
)

// QuestionnaireData is the raw, loosely-typed user input collected by the
// client wizard. Every field is optional; the mapper tolerates any subset
// being absent.
type QuestionnaireData struct {
	Demographics DemographicsSection `json:"demographics"`
	Health       HealthSection       `json:"health"`
	Lifestyle    LifestyleSection    `json:"lifestyle"`
	Financial    FinancialSection    `json:"financial"`
}

type DemographicsSection struct {
	DateOfBirth    *string `json:"date_of_birth,omitempty" example:"1985-06-15"`
	Gender         *string `json:"gender,omitempty" example:"female"`
	MaritalStatus  *string `json:"marital_status,omitempty" example:"married"`
	Education      *string `json:"education,omitempty" example:"Bachelor degree"`
	City           *string `json:"city,omitempty" example:"Pune"`
	Occupation     *string `json:"occupation,omitempty" example:"software engineer"`
	Dependents     *int    `json:"dependents,omitempty" example:"2"`
	IsSoleProvider *bool   `json:"is_sole_provider,omitempty" example:"true"`
}

// BloodPressureReading is the pre-split form of a blood pressure value.
// Clients may send either this object or a "120/80"-style string.
type BloodPressureReading struct {
	Systolic  int `json:"systolic" example:"120"`
	Diastolic int `json:"diastolic" example:"80"`
}

type HealthSection struct {
	Height             *float64              `json:"height,omitempty" example:"172"`
	HeightUnit         *string               `json:"height_unit,omitempty" example:"cm"`
	Weight             *float64              `json:"weight,omitempty" example:"68"`
	WeightUnit         *string               `json:"weight_unit,omitempty" example:"kg"`
	BloodPressure      *string               `json:"blood_pressure,omitempty" example:"120/80"`
	BloodPressureSplit *BloodPressureReading `json:"blood_pressure_split,omitempty"`
	RestingHeartRate   *int                  `json:"resting_heart_rate,omitempty" example:"72"`
	FastingBloodSugar  *int                  `json:"fasting_blood_sugar,omitempty" example:"95"`
	SmokingStatus      *string               `json:"smoking_status,omitempty" example:"never"`
	YearsSmoking       *int                  `json:"years_smoking,omitempty" example:"0"`
	AlcoholConsumption *string               `json:"alcohol_consumption,omitempty" example:"occasional"`
	MedicalConditions  []string              `json:"medical_conditions,omitempty"`
}

type LifestyleSection struct {
	ExerciseDaysPerWeek *int              `json:"exercise_days_per_week,omitempty" example:"3"`
	SleepHours          *float64          `json:"sleep_hours,omitempty" example:"7"`
	StressLevel         *int              `json:"stress_level,omitempty" example:"5"`
	DietFrequency       map[string]string `json:"diet_frequency,omitempty"`
}

type FinancialSection struct {
	AnnualIncome         *float64 `json:"annual_income,omitempty" example:"850000"`
	CoverageAmount       *float64 `json:"coverage_amount,omitempty" example:"500000"`
	MonthlyPremiumBudget *float64 `json:"monthly_premium_budget,omitempty" example:"2500"`
	PolicyTermYears      *int     `json:"policy_term_years,omitempty" example:"20"`
	HasExistingCoverage  *bool    `json:"has_existing_coverage,omitempty" example:"false"`
	HasDebt              *bool    `json:"has_debt,omitempty" example:"false"`
	HasSavings           *bool    `json:"has_savings,omitempty" example:"true"`
	InvestmentCapacity   *string  `json:"investment_capacity,omitempty" example:"medium"`
	InsuranceType        *string  `json:"insurance_type,omitempty" example:"term life"`
}

// Questionnaire is the persisted form, one row per user. Sections are stored
// as JSON columns so the wizard can save partial progress per section.
type Questionnaire struct {
	ID           uint                `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt    time.Time           `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt    time.Time           `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-" swaggerignore:"true"`
	UserID       uint                `gorm:"unique;index" json:"user_id" example:"1"`
	User         User                `gorm:"foreignKey:UserID" json:"-"`
	Demographics DemographicsSection `gorm:"serializer:json;type:jsonb" json:"demographics"`
	Health       HealthSection       `gorm:"serializer:json;type:jsonb" json:"health"`
	Lifestyle    LifestyleSection    `gorm:"serializer:json;type:jsonb" json:"lifestyle"`
	Financial    FinancialSection    `gorm:"serializer:json;type:jsonb" json:"financial"`
}

func (q *Questionnaire) TableName() string {
	return "questionnaires"
}

// Data flattens the persisted row back into the pipeline input shape.
func (q *Questionnaire) Data() *QuestionnaireData {
	return &QuestionnaireData{
		Demographics: q.Demographics,
		Health:       q.Health,
		Lifestyle:    q.Lifestyle,
		Financial:    q.Financial,
	}
}
