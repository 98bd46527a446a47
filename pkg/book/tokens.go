package book

import "strings"

// EstimateTokens estimates the token count of a text for budget planning.
// The heuristic is 1.3 tokens per whitespace-separated word plus a flat
// overhead of 100 tokens for prompt scaffolding. It deliberately
// overestimates; the budget planner treats estimates as upper bounds.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(float64(words)*1.3) + 100
}
