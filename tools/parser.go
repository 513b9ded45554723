package tools

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Call is a structured tool invocation extracted from generated text.
type Call struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
// Arguments are kept as the verbatim substring from the model output;
// decoding is deferred to the Executor.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

var functionTagRE = regexp.MustCompile(`<function>([^<]+)</function>`)

// argumentLookahead is how many lines past the closing tag the parser scans
// for a single-line JSON argument payload.
const argumentLookahead = 5

// ParseCalls extracts explicit tool invocations from generated text.
//
// Each `<function>NAME</function>` tag produces one call, in order of
// appearance. The first line within the lookahead window that starts with
// `{` and contains `}` is taken verbatim as the argument payload; if no
// such line exists the arguments default to "{}". JSON validity is not
// checked here.
func ParseCalls(text string) []Call {
	var calls []Call

	for _, loc := range functionTagRE.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		args := "{}"

		after := text[loc[1]:]
		lines := strings.Split(after, "\n")
		for i := 0; i < len(lines) && i < argumentLookahead; i++ {
			line := strings.TrimSpace(lines[i])
			if strings.HasPrefix(line, "{") && strings.Contains(line, "}") {
				args = line
				break
			}
		}

		calls = append(calls, Call{
			ID:   NewCallID("call"),
			Type: "function",
			Function: FunctionCall{
				Name:      name,
				Arguments: args,
			},
		})
	}

	return calls
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewCallID builds a call id from a millisecond timestamp and a random
// suffix. Collisions are negligible within a session; cross-process
// uniqueness is not guaranteed.
func NewCallID(prefix string) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

var (
	locationInRE = regexp.MustCompile(`(?i)in\s+([A-Za-z\s]+)`)
	weatherOfRE  = regexp.MustCompile(`(?i)weather\s+of\s+([A-Za-z\s]+)`)
	mathExprRE   = regexp.MustCompile(`(\d+\s*[+\-*/]\s*\d+)`)
	searchForRE  = regexp.MustCompile(`(?i)for\s+(.+)`)
)

// DetectFallback guesses a tool invocation from plain prose when the model
// failed to emit an explicit call. Callers must only invoke it after
// ParseCalls returned nothing.
//
// Rules are ordered and the first emitting rule wins. Weather is checked
// before time so that phrasings like "the weather at this time" are not
// misrouted to the clock tool. A rule whose keyword matches but whose
// capture fails falls through to the next rule without emitting.
func DetectFallback(text string) *Call {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "weather") || strings.Contains(lower, "temperature") {
		if m := locationInRE.FindStringSubmatch(text); m != nil {
			return fallbackCall("get_weather", map[string]any{"location": strings.TrimSpace(m[1])})
		}
		if m := weatherOfRE.FindStringSubmatch(text); m != nil {
			return fallbackCall("get_weather", map[string]any{"location": strings.TrimSpace(m[1])})
		}
	}

	if strings.Contains(lower, "time") {
		return fallbackCall("get_current_time", nil)
	}

	if strings.Contains(lower, "calculate") || strings.Contains(lower, "math") ||
		strings.ContainsAny(lower, "+*-/") {
		if m := mathExprRE.FindStringSubmatch(text); m != nil {
			return fallbackCall("calculate", map[string]any{"expression": m[1]})
		}
	}

	if strings.Contains(lower, "search") || strings.Contains(lower, "find") || strings.Contains(lower, "look up") {
		if m := searchForRE.FindStringSubmatch(text); m != nil {
			return fallbackCall("search_web", map[string]any{"query": strings.TrimSpace(m[1])})
		}
	}

	return nil
}

func fallbackCall(name string, args map[string]any) *Call {
	encoded := "{}"
	if len(args) > 0 {
		if data, err := json.Marshal(args); err == nil {
			encoded = string(data)
		}
	}
	return &Call{
		ID:   NewCallID("fallback"),
		Type: "function",
		Function: FunctionCall{
			Name:      name,
			Arguments: encoded,
		},
	}
}
