package ml

import (
	"fmt"
	"strings"

	"insurisk/internal/models"
)

// ValidationError reports every missing and out-of-range field of a
// prediction input. The input is only usable once both lists are empty.
type ValidationError struct {
	MissingFields []string `json:"missing_fields"`
	InvalidFields []string `json:"invalid_fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ml input validation failed: %d missing [%s], %d invalid [%s]",
		len(e.MissingFields), strings.Join(e.MissingFields, ", "),
		len(e.InvalidFields), strings.Join(e.InvalidFields, ", "))
}

func intRange(lo, hi int) func(interface{}) bool {
	return func(v interface{}) bool {
		n, ok := v.(int)
		return ok && n >= lo && n <= hi
	}
}

func floatRange(lo, hi float64) func(interface{}) bool {
	return func(v interface{}) bool {
		f, ok := v.(float64)
		return ok && f >= lo && f <= hi
	}
}

func oneOf(values ...string) func(interface{}) bool {
	return func(v interface{}) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, allowed := range values {
			if s == allowed {
				return true
			}
		}
		return false
	}
}

func isBool(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

// fieldRules is the per-attribute constraint table for the 38-field schema.
// Every attribute has an explicit valid-value set or numeric range; this map
// is the single source of truth for both.
var fieldRules = map[string]func(interface{}) bool{
	"age":            intRange(18, 70),
	"gender":         oneOf("Male", "Female", "Other"),
	"marital_status": oneOf("Single", "Married", "Divorced", "Widowed"),
	"education":      oneOf("Graduate", "High School", "Other"),
	"occupation":     oneOf("Salaried", "Self-Employed", "Business", "Student", "Retired", "Homemaker"),
	"city": oneOf("Mumbai", "Delhi", "Bangalore", "Hyderabad",
		"Chennai", "Kolkata", "Pune", "Ahmedabad"),
	"region_type":      oneOf("Metro", "Tier-1", "Tier-2"),
	"dependents":       intRange(0, 10),
	"is_sole_provider": isBool,

	"annual_income_range": oneOf("<5L", "5L-10L", ">10L"),
	// "RARE" is the hosted model's literal for the high bucket.
	"investment_capacity":    oneOf("Low", "Medium", "RARE"),
	"coverage_amount":        floatRange(50000, 10000000),
	"policy_term_years":      intRange(5, 40),
	"monthly_premium_budget": floatRange(100, 100000),
	"has_existing_coverage":  isBool,
	"has_debt":               isBool,
	"has_savings":            isBool,
	"insurance_type":         oneOf("Term Life", "Whole Life", "Health", "Endowment"),

	"height_cm":            floatRange(100, 220),
	"weight_kg":            floatRange(30, 200),
	"bp_systolic":          intRange(80, 220),
	"bp_diastolic":         intRange(50, 140),
	"resting_heart_rate":   intRange(40, 120),
	"fasting_blood_sugar":  intRange(60, 300),
	"smoking_status":       oneOf("Never", "Former", "Current"),
	"years_smoking":        intRange(0, 50),
	"alcohol_consumption":  oneOf("Never", "Occasional", "Regular"),
	"has_heart_disease":    isBool,
	"has_asthma":           isBool,
	"has_thyroid_disorder": isBool,
	"has_cancer_history":   isBool,
	"has_kidney_disease":   isBool,

	"exercise_days_per_week":   intRange(0, 7),
	"sleep_hours":              floatRange(3, 12),
	"stress_level":             intRange(1, 10),
	"junk_food_frequency":      oneOf("Rarely", "Weekly", "Daily"),
	"fruits_veggies_frequency": oneOf("Rarely", "Weekly", "Daily"),
	"non_veg_frequency":        oneOf("Rarely", "Weekly", "Daily"),
}

// ValidateInput checks the full 38-field schema. A missing value is a
// missing-field error; a present value outside its domain is an
// invalid-field error. Returns nil when the input is fully valid.
func ValidateInput(in *models.MLModelInput) *ValidationError {
	verr := &ValidationError{}
	for _, name := range models.MLInputFieldNames {
		value, present := in.FieldValue(name)
		if !present {
			verr.MissingFields = append(verr.MissingFields, name)
			continue
		}
		if rule, ok := fieldRules[name]; ok && !rule(value) {
			verr.InvalidFields = append(verr.InvalidFields, name)
		}
	}

	if len(verr.MissingFields) == 0 && len(verr.InvalidFields) == 0 {
		return nil
	}
	return verr
}
