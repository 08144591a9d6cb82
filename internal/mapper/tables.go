package mapper

import "strings"

// KeywordGroup maps a set of keywords to one canonical schema value.
type KeywordGroup struct {
	Value    string
	Keywords []string
}

// MatchKeyword returns the group value whose keywords exactly match the
// lowercased, trimmed input, or the fallback when nothing matches.
func MatchKeyword(groups []KeywordGroup, raw string, fallback string) string {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, g := range groups {
		for _, kw := range g.Keywords {
			if needle == kw {
				return g.Value
			}
		}
	}
	return fallback
}

// MatchSubstring returns the group value for the first group with a keyword
// contained in the lowercased input, or the fallback.
func MatchSubstring(groups []KeywordGroup, raw string, fallback string) string {
	needle := strings.ToLower(raw)
	for _, g := range groups {
		for _, kw := range g.Keywords {
			if strings.Contains(needle, kw) {
				return g.Value
			}
		}
	}
	return fallback
}

// ContainsAnyKeyword reports whether any entry of the free-text list contains
// one of the keywords. Used for medical condition flag detection.
func ContainsAnyKeyword(entries []string, keywords []string) bool {
	for _, entry := range entries {
		lower := strings.ToLower(entry)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

var GenderGroups = []KeywordGroup{
	{Value: "Male", Keywords: []string{"male", "m", "man"}},
	{Value: "Female", Keywords: []string{"female", "f", "woman"}},
	{Value: "Other", Keywords: []string{"other", "nonbinary", "non-binary"}},
}

var MaritalGroups = []KeywordGroup{
	{Value: "Married", Keywords: []string{"married", "wed"}},
	{Value: "Divorced", Keywords: []string{"divorced", "separated"}},
	{Value: "Widowed", Keywords: []string{"widowed", "widow", "widower"}},
	{Value: "Single", Keywords: []string{"single", "unmarried", "never married"}},
}

var EducationGroups = []KeywordGroup{
	{Value: "Graduate", Keywords: []string{"college", "university", "degree", "graduate", "bachelor", "master", "phd", "doctorate"}},
	{Value: "High School", Keywords: []string{"12", "high school", "secondary", "intermediate"}},
}

// CityGroups is the fixed allow-list of eight cities the external schema
// accepts. Matching is by substring so "Navi Mumbai" or "Bengaluru East"
// still resolve.
var CityGroups = []KeywordGroup{
	{Value: "Mumbai", Keywords: []string{"mumbai", "bombay"}},
	{Value: "Delhi", Keywords: []string{"delhi", "new delhi", "ncr"}},
	{Value: "Bangalore", Keywords: []string{"bangalore", "bengaluru"}},
	{Value: "Hyderabad", Keywords: []string{"hyderabad", "secunderabad"}},
	{Value: "Chennai", Keywords: []string{"chennai", "madras"}},
	{Value: "Kolkata", Keywords: []string{"kolkata", "calcutta"}},
	{Value: "Pune", Keywords: []string{"pune"}},
	{Value: "Ahmedabad", Keywords: []string{"ahmedabad", "amdavad"}},
}

var MetroKeywords = []string{"mumbai", "bombay", "delhi", "bangalore", "bengaluru", "kolkata", "calcutta", "chennai", "madras"}

var Tier1Keywords = []string{"hyderabad", "pune", "ahmedabad", "jaipur", "surat", "lucknow"}

// InvestmentGroups maps to the external schema's literals. "RARE" is the
// value the hosted model expects for the high-capacity bucket; it is not a
// label this codebase invented.
var InvestmentGroups = []KeywordGroup{
	{Value: "Low", Keywords: []string{"low", "minimal", "none", "small", "conservative"}},
	{Value: "Medium", Keywords: []string{"medium", "moderate", "average", "balanced"}},
	{Value: "RARE", Keywords: []string{"high", "aggressive", "large", "maximum", "max"}},
}

var SmokingGroups = []KeywordGroup{
	{Value: "Current", Keywords: []string{"current", "yes", "active", "regular", "daily", "smoker"}},
	{Value: "Former", Keywords: []string{"former", "quit", "past", "used to", "ex-smoker"}},
	{Value: "Never", Keywords: []string{"never", "no", "non-smoker"}},
}

var AlcoholGroups = []KeywordGroup{
	{Value: "Regular", Keywords: []string{"regular", "daily", "frequent", "heavy"}},
	{Value: "Occasional", Keywords: []string{"occasional", "social", "sometimes", "rare", "rarely"}},
	{Value: "Never", Keywords: []string{"never", "no", "none", "teetotaler"}},
}

var OccupationGroups = []KeywordGroup{
	{Value: "Business", Keywords: []string{"business", "owner", "entrepreneur", "shop", "trader", "merchant"}},
	{Value: "Self-Employed", Keywords: []string{"self", "freelanc", "consultant", "contractor"}},
	{Value: "Student", Keywords: []string{"student"}},
	{Value: "Retired", Keywords: []string{"retired", "pension"}},
	{Value: "Homemaker", Keywords: []string{"homemaker", "housewife", "house husband"}},
	{Value: "Salaried", Keywords: []string{"engineer", "developer", "teacher", "doctor", "nurse", "accountant", "manager", "analyst", "clerk", "employee", "salaried", "officer"}},
}

var InsuranceTypeGroups = []KeywordGroup{
	{Value: "Whole Life", Keywords: []string{"whole"}},
	{Value: "Health", Keywords: []string{"health", "medical", "mediclaim"}},
	{Value: "Endowment", Keywords: []string{"endow", "saving", "invest", "ulip"}},
	{Value: "Term Life", Keywords: []string{"term", "life"}},
}

var DietFrequencyGroups = []KeywordGroup{
	{Value: "Rarely", Keywords: []string{"never", "rare", "rarely", "seldom", "no"}},
	{Value: "Daily", Keywords: []string{"daily", "every day", "everyday", "often", "frequent", "regular"}},
	{Value: "Weekly", Keywords: []string{"week", "weekly", "sometimes", "occasional", "occasionally"}},
}

// Condition keyword tables. Each flag is detected independently by
// containment search over the free-text medical condition list.
var (
	HeartDiseaseKeywords = []string{"heart", "cardiac", "cardio", "coronary", "angina", "bypass"}
	AsthmaKeywords       = []string{"asthma", "respiratory", "breathing", "copd", "bronchitis"}
	ThyroidKeywords      = []string{"thyroid", "hypothyroid", "hyperthyroid", "goiter", "goitre"}
	CancerKeywords       = []string{"cancer", "tumor", "tumour", "carcinoma", "leukemia", "oncolog"}
	KidneyKeywords       = []string{"kidney", "renal", "nephro", "dialysis"}
	DiabetesKeywords     = []string{"diabetes", "diabetic", "sugar"}
	HypertensionKeywords = []string{"hypertension", "blood pressure", "high bp"}
)
