package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jmcalloway/stride/internal/constants"
	"github.com/jmcalloway/stride/internal/logger"
)

const systemPrompt = "You are a concise habit coach. You answer in plain text, " +
	"never markdown, and keep responses under 120 words."

// OpenAIGenerator implements Generator against the OpenAI chat API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a generator using the given API key and model. An empty
// model falls back to the default.
func NewOpenAI(apiKey, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not set")
	}
	if model == "" {
		model = constants.DefaultInsightModel
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (g *OpenAIGenerator) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HabitInsight implements Generator.
func (g *OpenAIGenerator) HabitInsight(ctx context.Context, stats Stats) (string, error) {
	logger.Debug("Requesting habit insight", "habit", stats.HabitName, "model", g.model)
	return g.complete(ctx, buildInsightPrompt(stats))
}

// SuggestHabits implements Generator.
func (g *OpenAIGenerator) SuggestHabits(ctx context.Context, existing []string, max int) ([]Suggestion, error) {
	if max <= 0 {
		max = constants.DefaultMaxSuggestions
	}

	raw, err := g.complete(ctx, buildSuggestionPrompt(existing, max))
	if err != nil {
		return nil, err
	}

	suggestions := parseSuggestions(raw)
	if len(suggestions) == 0 {
		logger.Warn("Suggestion response was not parseable JSON, returning no suggestions")
		return nil, nil
	}
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions, nil
}

func buildInsightPrompt(stats Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Give feedback on my habit %q.\n", stats.HabitName)
	if stats.Cue != "" {
		fmt.Fprintf(&b, "Cue: %s\n", stats.Cue)
	}
	if stats.Routine != "" {
		fmt.Fprintf(&b, "Routine: %s\n", stats.Routine)
	}
	fmt.Fprintf(&b, "Target frequency: %s\n", stats.Frequency)
	fmt.Fprintf(&b, "Current streak: %d days, longest streak: %d days.\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Fprintf(&b, "Completed %d times total, %d%% of the last 30 days.\n", stats.TotalCompletions, stats.CompletionRate)
	if stats.BestDay != "" {
		fmt.Fprintf(&b, "Most completions happen on %s", stats.BestDay)
		if stats.BestHour >= 0 {
			fmt.Fprintf(&b, ", usually around %02d:00", stats.BestHour)
		}
		b.WriteString(".\n")
	}
	if stats.LastCompletedAt != "" {
		fmt.Fprintf(&b, "Last completed: %s\n", stats.LastCompletedAt)
	}
	b.WriteString("Point out one thing going well and one concrete improvement.")
	return b.String()
}

func buildSuggestionPrompt(existing []string, max int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest up to %d new habits that complement my existing ones.\n", max)
	if len(existing) > 0 {
		fmt.Fprintf(&b, "Existing habits: %s.\n", strings.Join(existing, ", "))
	} else {
		b.WriteString("I have no habits yet; suggest beginner-friendly ones.\n")
	}
	b.WriteString(`Respond with ONLY a JSON array, no prose, where each element is ` +
		`{"name": "...", "cue": "...", "routine": "...", "reward": "..."}.`)
	return b.String()
}

// parseSuggestions extracts a suggestion list from model output. Models often
// wrap JSON in code fences or lead-in prose, so parsing falls back to the
// outermost bracketed span before giving up.
func parseSuggestions(raw string) []Suggestion {
	candidates := []string{raw}

	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	candidates = append(candidates, strings.TrimSpace(trimmed))

	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start >= 0 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}

	for _, c := range candidates {
		var suggestions []Suggestion
		if err := json.Unmarshal([]byte(c), &suggestions); err != nil {
			continue
		}
		var valid []Suggestion
		for _, s := range suggestions {
			if strings.TrimSpace(s.Name) != "" {
				valid = append(valid, s)
			}
		}
		if len(valid) > 0 {
			return valid
		}
	}
	return nil
}
