package profilegen

import (
	"strings"

	"github.com/dvloznov/cardsim/internal/merchant"
)

// buildProfilePrompt assembles the drafting instructions: the YAML schema,
// the allowed category names from the catalog, and the user's description.
func buildProfilePrompt(catalog *merchant.Catalog, description string) string {
	var b strings.Builder

	b.WriteString("You are a consumer-spending behavior modeler.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Design a daily spending behavior profile for the persona described below.\n")
	b.WriteString("- Output STRICT YAML only (no comments, no extra text).\n\n")

	b.WriteString("The YAML must have this shape:\n")
	b.WriteString("name: <snake_case_profile_name>\n")
	b.WriteString("categories:\n")
	b.WriteString("  <category>:\n")
	b.WriteString("    weekday: {peak_hour: <0-23, fractional ok>, std_dev: <hours>, max_prob: <0-1>}\n")
	b.WriteString("    weekend: {peak_hour: ..., std_dev: ..., max_prob: ...}\n")
	b.WriteString("    amount_mean: <GBP>\n")
	b.WriteString("    amount_std: <GBP>\n")
	b.WriteString("recurring:\n")
	b.WriteString("  - category: <category>\n")
	b.WriteString("    day: <1-28>\n")
	b.WriteString("trip:\n")
	b.WriteString("  trigger_category: <category>\n")
	b.WriteString("  trigger_prob: <0-1>\n")
	b.WriteString("  max_addons: <int>\n")
	b.WriteString("  window_minutes: <int>\n")
	b.WriteString("  addons:\n")
	b.WriteString("    - {category: <category>, weight: <positive>}\n\n")

	b.WriteString("Use ONLY the following category names:\n")
	for _, cat := range catalog.Categories() {
		b.WriteString("  - " + cat + "\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Bill-like categories (utility_bill, phone_bill, subscription) should omit weekday/weekend curves and be listed under recurring instead.\n")
	b.WriteString("- Every category in recurring and trip must also appear under categories.\n")
	b.WriteString("- amount_mean must be positive; probabilities must lie in [0,1].\n")
	b.WriteString("- Return ONLY valid raw YAML. Do NOT wrap the response in code fences. Do NOT use ```yaml or any Markdown.\n\n")

	b.WriteString("Persona description:\n")
	b.WriteString(description)
	b.WriteString("\n")

	return b.String()
}
