package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"insurisk/internal/models"
)

// Enhancer produces the advisory block of a hybrid analysis.
type Enhancer interface {
	Enhance(ctx context.Context, q *models.QuestionnaireData, assessment *models.RiskAssessment) (*models.AdvisoryEnhancement, error)
}

// Client talks to the generative advisory endpoint. Any transport or parse
// failure is surfaced to the caller, which substitutes the rule-based
// enhancement; the overall analysis never fails because of this client.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

func NewClient() (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	endpoint := os.Getenv("GEMINI_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Enhance sends a structured profile summary to the generative endpoint and
// parses the strict-JSON advisory contract out of the reply.
func (c *Client) Enhance(ctx context.Context, q *models.QuestionnaireData, assessment *models.RiskAssessment) (*models.AdvisoryEnhancement, error) {
	prompt := buildPrompt(q, assessment)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal advisory request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", c.endpoint, c.apiKey)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create advisory request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("advisory request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisory endpoint returned status %d", response.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode advisory response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("advisory response contained no candidates")
	}

	text := stripCodeFences(result.Candidates[0].Content.Parts[0].Text)

	var enhancement models.AdvisoryEnhancement
	if err := json.Unmarshal([]byte(text), &enhancement); err != nil {
		return nil, fmt.Errorf("failed to parse advisory JSON: %w", err)
	}
	enhancement.Generated = true
	return &enhancement, nil
}

func buildPrompt(q *models.QuestionnaireData, assessment *models.RiskAssessment) string {
	var profile strings.Builder
	profile.WriteString("### Applicant Profile\n")
	if q.Demographics.DateOfBirth != nil {
		fmt.Fprintf(&profile, "- Date of birth: %s\n", *q.Demographics.DateOfBirth)
	}
	if q.Demographics.Occupation != nil {
		fmt.Fprintf(&profile, "- Occupation: %s\n", *q.Demographics.Occupation)
	}
	if q.Demographics.City != nil {
		fmt.Fprintf(&profile, "- City: %s\n", *q.Demographics.City)
	}
	if q.Demographics.Dependents != nil {
		fmt.Fprintf(&profile, "- Dependents: %d\n", *q.Demographics.Dependents)
	}
	if q.Financial.AnnualIncome != nil {
		fmt.Fprintf(&profile, "- Annual income: %.0f\n", *q.Financial.AnnualIncome)
	}
	if q.Financial.CoverageAmount != nil {
		fmt.Fprintf(&profile, "- Requested coverage: %.0f\n", *q.Financial.CoverageAmount)
	}
	if q.Financial.MonthlyPremiumBudget != nil {
		fmt.Fprintf(&profile, "- Monthly premium budget: %.0f\n", *q.Financial.MonthlyPremiumBudget)
	}
	if len(q.Health.MedicalConditions) > 0 {
		fmt.Fprintf(&profile, "- Medical conditions: %s\n", strings.Join(q.Health.MedicalConditions, ", "))
	}
	fmt.Fprintf(&profile, "- Computed risk score: %d (%s)\n", assessment.RiskScore, assessment.RiskCategory)
	fmt.Fprintf(&profile, "- Estimated monthly premium: %.0f\n", assessment.MonthlyPremium)

	return fmt.Sprintf(`### General Request:
You are an insurance advisory assistant. Given the applicant profile below,
suggest suitable policies and concise personalized advice.

%s

### Output Format:
The output must be a JSON object with the following structure:
- 'eligible_policies': array of objects with 'name', 'type', 'coverage_amount', 'monthly_premium', 'reason'.
- 'risk_assessment': a 2-sentence plain-language summary of the applicant's risk.
- 'premium_optimization': one actionable suggestion to reduce the premium.
- 'personalized_advice': 2-3 sentences of advice specific to this profile.
- 'confidence_score': a number between 0 and 1.
Do not enclose the JSON in markdown code. Only return the JSON object.`, profile.String())
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
