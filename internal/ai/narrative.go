package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"vendordesk/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// Narrator produces a short written commentary for a revenue report.
type Narrator struct {
	client *openai.Client
}

func NewNarrator(apiKey string) *Narrator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Narrator{client: &client}
}

// narrativeOutput is the structured response the model must return.
type narrativeOutput struct {
	Markdown string `json:"markdown" jsonschema_description:"Markdown commentary on the revenue figures, at most four short paragraphs"`
}

// RevenueNarrative asks the model for a markdown commentary on one financial
// year's aggregates. The figures are passed verbatim as JSON; the model never
// sees individual orders or client data.
func (n *Narrator) RevenueNarrative(ctx context.Context, fy core.FinancialYear, report *core.RevenueReport) (string, error) {
	figures, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	prompt := fmt.Sprintf(`You are a financial analyst for a software vendor.
Write a brief markdown commentary on the revenue figures for financial year %s (%s to %s).
Rules:
1. Mention bookings, received vs pending collections, and AMC performance.
2. Do not invent figures; use only the numbers provided.
3. At most four short paragraphs, no headings.

Figures (JSON):
%s`, fy.Label, fy.StartDate.Format("2006-01-02"), fy.EndDate.Format("2006-01-02"), figures)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return "", fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:   constant.JSONSchema("json_schema"),
					Name:   "revenue_narrative",
					Strict: param.NewOpt(true),
					Schema: schemaMap,
				},
			},
		},
	}

	resp, err := n.client.Responses.New(ctx, params)
	if err != nil {
		return "", &core.RemoteError{Op: "openai responses", Err: err}
	}

	content := resp.OutputText()
	if content == "" {
		return "", &core.RemoteError{Op: "openai responses", Err: fmt.Errorf("empty response content")}
	}

	var out narrativeOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", fmt.Errorf("failed to parse completion: %w", err)
	}
	return out.Markdown, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v narrativeOutput
	return reflector.Reflect(v)
}
