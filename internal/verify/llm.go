package verify

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const llmSystemPrompt = "You are a clinical calculation verifier. You are given the published " +
	"formula for a medical score or equation and a set of named numeric inputs. " +
	"Recompute the value exactly as the formula describes. Reply with the final " +
	"numeric value only: no units, no explanation, no formatting."

// LLMAuthority recomputes a calculator through an OpenAI chat model using
// the calculator's formula description. It covers the long tail of scores
// the reference table does not, at the cost of latency and a network
// dependency, so it is selected by configuration rather than by default.
type LLMAuthority struct {
	client openai.Client
	model  string
}

// NewLLMAuthority builds an authority backed by the OpenAI API.
func NewLLMAuthority(apiKey, model string) (*LLMAuthority, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm authority: api key not set")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMAuthority{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Recompute prompts the model with the formula and inputs and parses a
// single numeric answer.
func (a *LLMAuthority) Recompute(ctx context.Context, calcID, formula string, inputs map[string]float64) (float64, error) {
	if formula == "" {
		return 0, fmt.Errorf("%w: %s has no formula description", ErrUnsupported, calcID)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(a.model),
		MaxTokens:   openai.Int(32),
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(llmSystemPrompt),
			openai.UserMessage(llmUserPrompt(calcID, formula, inputs)),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("llm authority: chat.completions.new: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("llm authority: response contained no choices")
	}
	return parseNumericAnswer(resp.Choices[0].Message.Content)
}

func llmUserPrompt(calcID, formula string, inputs map[string]float64) string {
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Calculator: %s\nFormula: %s\nInputs:\n", calcID, formula)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s = %g\n", k, inputs[k])
	}
	b.WriteString("Value:")
	return b.String()
}

// parseNumericAnswer extracts the leading number from a model reply,
// tolerating surrounding whitespace and a trailing period.
func parseNumericAnswer(content string) (float64, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return 0, fmt.Errorf("llm authority: empty response")
	}
	fields := strings.Fields(s)
	candidate := strings.TrimRight(fields[0], ".,")
	v, err := strconv.ParseFloat(candidate, 64)
	if err != nil {
		return 0, fmt.Errorf("llm authority: non-numeric response %q", s)
	}
	return v, nil
}
