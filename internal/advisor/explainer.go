package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/driveline-group/showroom-cli/internal/match"
	"github.com/driveline-group/showroom-cli/pkg/anthropic"
)

const explainPrompt = `You are a friendly car-shopping assistant. In one short paragraph
(3 sentences max), explain to the shopper why this vehicle fits the match reasons given.
Do not invent specs that are not listed. Plain text only.`

// Explainer turns a ranked recommendation into one short plain-language
// paragraph. Enabled by explicit configuration, never ambient state.
type Explainer struct {
	ai    anthropic.Client
	model string
}

// NewExplainer creates an Explainer.
func NewExplainer(ai anthropic.Client, model string) *Explainer {
	return &Explainer{ai: ai, model: model}
}

// Explain describes one recommendation. The outcome must not be excluded.
func (e *Explainer) Explain(ctx context.Context, out match.Outcome) (string, error) {
	if out.Excluded {
		return "", eris.New("advisor: cannot explain an excluded vehicle")
	}

	v := out.Vehicle
	userMsg := fmt.Sprintf("Vehicle: %d %s %s %s (%s, %s, $%.0f MSRP)\nMatch score: %.0f\nReasons:\n- %s",
		v.Year, v.Make, v.Model, v.Trim, v.BodyStyle, v.Engine.FuelType,
		v.Price.BaseMSRP, out.Score, strings.Join(out.Reasons, "\n- "))

	resp, err := e.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: 512,
		System:    explainPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: userMsg}},
	})
	if err != nil {
		return "", eris.Wrapf(err, "advisor: explain %s", v.ID)
	}
	resp.Usage.Log(e.model, "explain")

	text := strings.TrimSpace(firstText(resp))
	if text == "" {
		return "", eris.Errorf("advisor: empty explanation for %s", v.ID)
	}
	return text, nil
}
