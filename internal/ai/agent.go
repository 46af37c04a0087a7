package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"workshop-manager/internal/core"
)

// AgentService turns a free-text description of a workshop event into a
// structured entry proposal.
type AgentService interface {
	InterpretEvent(ctx context.Context, naturalLanguage string, businessContext string) (*core.EntryProposal, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// InterpretEvent asks the model for a structured proposal and runs it through
// Normalize/Validate before handing it back. businessContext carries the
// current catalog, roster and today's date so names and dates resolve.
func (a *Agent) InterpretEvent(ctx context.Context, naturalLanguage string, businessContext string) (*core.EntryProposal, error) {
	prompt := fmt.Sprintf(`You are the bookkeeper of a furniture workshop.
Your goal is to interpret a business event described in natural language and propose a single record for the workshop's books.
Rules:
1. Kind is "sale" for a customer sale, "udhar" for a worker payment or advance, "material" for a stock purchase.
2. Amounts must be exact number strings (e.g. "9000").
3. Dates use YYYY-MM-DD. If the event does not say, use today's date from the context.
4. Match party and item names against the context where possible; otherwise keep the name as spoken.
5. Provide a confidence score (0.0-1.0).
6. Explain your reasoning.

Workshop context:
%s

Event: %s`, businessContext, naturalLanguage)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "workshop_entry_proposal",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A proposed sale, udhar ledger entry or material purchase"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var proposal core.EntryProposal
	if err := json.Unmarshal([]byte(content), &proposal); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	proposal.Normalize()
	if err := proposal.Validate(); err != nil {
		return nil, fmt.Errorf("proposal validation failed: %w", err)
	}

	return &proposal, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.EntryProposal
	return reflector.Reflect(v)
}
