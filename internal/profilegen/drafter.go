// Package profilegen drafts persona behavior profiles from prose
// descriptions using Gemini. The model output is YAML in the same schema the
// profile loader accepts, so every draft goes through the same validation as
// a hand-written file.
package profilegen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dvloznov/cardsim/internal/merchant"
	"github.com/dvloznov/cardsim/internal/profile"
)

// Drafter turns a prose persona description into a validated profile.
// The interface exists so commands and tests can swap out the model call.
type Drafter interface {
	DraftProfile(ctx context.Context, description string) (*profile.Profile, error)
}

// GeminiDrafter is the concrete Drafter backed by Gemini.
type GeminiDrafter struct {
	model   string
	catalog *merchant.Catalog
}

// NewGeminiDrafter creates a drafter that constrains the model to the given
// catalog's categories.
func NewGeminiDrafter(model string, catalog *merchant.Catalog) *GeminiDrafter {
	return &GeminiDrafter{model: model, catalog: catalog}
}

// DraftProfile sends the description to Gemini and parses the returned YAML
// into a profile. A draft that fails profile validation is an error; the
// raw model output is included so the prompt can be tuned.
func (d *GeminiDrafter) DraftProfile(ctx context.Context, description string) (*profile.Profile, error) {
	prompt := buildProfilePrompt(d.catalog, description)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("DraftProfile: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, d.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("DraftProfile: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("DraftProfile: empty response from model")
	}

	clean := cleanModelYAML(rawText)

	p, err := profile.Parse([]byte(clean))
	if err != nil {
		return nil, fmt.Errorf("DraftProfile: model output failed validation: %w\nraw response: %s", err, rawText)
	}
	return p, nil
}

// cleanModelYAML strips Markdown fences and stray text if the model ignored
// the raw-output instruction.
func cleanModelYAML(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```yaml).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
