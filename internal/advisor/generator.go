// Package advisor holds the Claude-backed collaborators around the engine:
// catalog generation and optional plain-language recommendation
// explanations. The engine itself never depends on this package.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/driveline-group/showroom-cli/internal/catalog"
	"github.com/driveline-group/showroom-cli/pkg/anthropic"
)

// generatePrompt asks for catalog entries in the raw document shape.
// Numeric fields may come back as strings ("$34,500"); normalization owns
// that, so the prompt does not fight it.
const generatePrompt = `You are generating a realistic vehicle catalog for a car-shopping tool.
Produce exactly %d current-model-year vehicles in the "%s" category as a JSON array.
Each element must have: id (kebab-case string), type (exactly "%s"), make, model, year,
trim, engine {type, horsepower, fuelType}, mpg {city, highway}, driveType (FWD|RWD|AWD|4WD),
bodyStyle, price {baseMSRP, leaseEstimate, financeEstimate}, seatingCapacity, features
(array of strings), dealerships (array of {name, zip, distance}).
Respond with ONLY the JSON array, no other text.`

// Generator produces catalog entries via Claude, one request per category,
// paced by a shared rate limiter.
type Generator struct {
	ai      anthropic.Client
	model   string
	limiter *rate.Limiter
}

// NewGenerator creates a Generator. The limiter applies across categories.
func NewGenerator(ai anthropic.Client, model string) *Generator {
	return &Generator{
		ai:      ai,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
}

// Generate requests perCategory vehicles for each category concurrently
// and returns the combined raw records in category order.
func (g *Generator) Generate(ctx context.Context, categories []catalog.VehicleType, perCategory int) ([]catalog.RawVehicle, error) {
	if perCategory <= 0 {
		return nil, eris.New("advisor: perCategory must be positive")
	}

	results := make([][]catalog.RawVehicle, len(categories))
	var mu sync.Mutex

	grp, gctx := errgroup.WithContext(ctx)
	for i, cat := range categories {
		grp.Go(func() error {
			raws, err := g.generateCategory(gctx, cat, perCategory)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = raws
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var combined []catalog.RawVehicle
	for _, raws := range results {
		combined = append(combined, raws...)
	}
	return combined, nil
}

func (g *Generator) generateCategory(ctx context.Context, cat catalog.VehicleType, n int) ([]catalog.RawVehicle, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "advisor: rate limit wait")
	}

	resp, err := g.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: 8192,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(generatePrompt, n, cat, cat)},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "advisor: generate %s", cat)
	}
	resp.Usage.Log(g.model, "generate")

	text := firstText(resp)
	if text == "" {
		return nil, eris.Errorf("advisor: empty response for %s", cat)
	}

	payload, err := extractJSONArray(text)
	if err != nil {
		return nil, eris.Wrapf(err, "advisor: response for %s", cat)
	}

	var raws []catalog.RawVehicle
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		return nil, eris.Wrapf(err, "advisor: parse vehicles for %s", cat)
	}

	zap.L().Info("advisor: generated vehicles",
		zap.String("category", string(cat)),
		zap.Int("count", len(raws)),
	)
	return raws, nil
}

// firstText returns the first text block of a response.
func firstText(resp *anthropic.MessageResponse) string {
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

// extractJSONArray finds the outermost JSON array in a response that may
// carry surrounding prose.
func extractJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < 0 || end <= start {
		return "", eris.New("no JSON array in response")
	}
	return text[start : end+1], nil
}
