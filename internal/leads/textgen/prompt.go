package textgen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"leadscout_backend/platform/sanitize"
)

// SystemInstruction frames the model as the company's sales assistant.
const SystemInstruction = "Du är en AI-assistent för ett svenskt energibolag (Lystr) som säljer solceller som en tjänst (EaaS)."

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// BuildPrompt renders the analysis instructions for req.
func BuildPrompt(req Request) string {
	name := strings.TrimSpace(req.ContactName)
	if name == "" {
		name = fallbackContactName
	}
	return fmt.Sprintf(`Analysera följande säljanteckningar och:
1. Skapa en kort, professionell sammanfattning (max 2 meningar)
2. Skriv ett uppföljnings-SMS på svenska (max 160 tecken)

Anteckningar: "%s"

Identifierade invändningar: %s
Kunds namn: %s

Svara i JSON-format:
{
  "summary": "sammanfattning här",
  "followUp": "SMS-text här"
}`, sanitize.Printable(req.Notes), strings.Join(req.Objections.Strings(), ", "), name)
}

// ParseResponse extracts the first-to-last brace span of text and decodes it.
// Models often wrap JSON in prose or code fences.
func ParseResponse(text string) (Result, error) {
	raw := jsonObjectPattern.FindString(text)
	if raw == "" {
		return Result{}, fmt.Errorf("textgen: no JSON object in response")
	}
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return Result{}, fmt.Errorf("textgen: decode response: %w", err)
	}
	if err := validate(res); err != nil {
		return Result{}, err
	}
	return res, nil
}
