package tools

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// builtinTools returns the static tool set. The search and weather tools are
// simulated stand-ins; they keep the payload shape of a real backend so the
// formatter and tests exercise the full pipeline.
func builtinTools() []Tool {
	return []Tool{
		{
			Name:        "get_current_time",
			Description: "Get the current date and time",
			Parameters: mcptypes.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
				Required:   []string{},
			},
			Execute: executeCurrentTime,
		},
		{
			Name:        "calculate",
			Description: "Perform basic mathematical calculations",
			Parameters: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"expression": map[string]any{
						"type":        "string",
						"description": "The mathematical expression to evaluate (e.g., '2 + 2', '10 * 5')",
					},
				},
				Required: []string{"expression"},
			},
			Execute: executeCalculate,
		},
		{
			Name:        "search_web",
			Description: "Search the web for current information (simulated)",
			Parameters: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The search query",
					},
				},
				Required: []string{"query"},
			},
			Execute: executeSearchWeb,
		},
		{
			Name:        "get_weather",
			Description: "Get current weather information (simulated)",
			Parameters: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"location": map[string]any{
						"type":        "string",
						"description": "City name or location",
					},
				},
				Required: []string{"location"},
			},
			Execute: executeWeather,
		},
	}
}

func executeCurrentTime(ctx context.Context, args map[string]any) (map[string]any, error) {
	now := time.Now()
	return map[string]any{
		"current_time": now.UTC().Format(time.RFC3339),
		"formatted":    now.Format("Jan 2, 2006 3:04:05 PM"),
	}, nil
}

// sanitizeExprRE strips everything that is not part of a basic arithmetic
// expression before evaluation.
var sanitizeExprRE = regexp.MustCompile(`[^0-9+\-*/().\s]`)

func executeCalculate(ctx context.Context, args map[string]any) (map[string]any, error) {
	expression, _ := args["expression"].(string)
	sanitized := sanitizeExprRE.ReplaceAllString(expression, "")

	result, err := evalExpression(sanitized)
	if err != nil {
		return map[string]any{
			"error":      "Invalid mathematical expression",
			"expression": expression,
		}, nil
	}

	return map[string]any{
		"expression":           expression,
		"result":               result,
		"sanitized_expression": sanitized,
	}, nil
}

func executeSearchWeb(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, _ := args["query"].(string)
	return map[string]any{
		"query": query,
		"results": []map[string]any{
			{
				"title":   fmt.Sprintf("Search results for: %s", query),
				"snippet": fmt.Sprintf("This is a simulated search result for %q. In a real implementation, this would connect to a search API.", query),
				"url":     "https://example.com/search?q=" + url.QueryEscape(query),
			},
		},
		"note": "This is a simulated search. For real web search, integrate with a search API.",
	}, nil
}

var weatherConditions = []string{"Sunny", "Cloudy", "Rainy", "Snowy", "Partly Cloudy"}

func executeWeather(ctx context.Context, args map[string]any) (map[string]any, error) {
	location, _ := args["location"].(string)
	return map[string]any{
		"location":    location,
		"temperature": fmt.Sprintf("%d°C", rand.Intn(30)+10),
		"condition":   weatherConditions[rand.Intn(len(weatherConditions))],
		"humidity":    fmt.Sprintf("%d%%", rand.Intn(40)+40),
		"note":        "This is simulated weather data. For real weather, integrate with a weather API.",
	}, nil
}
