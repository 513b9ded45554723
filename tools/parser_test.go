package tools

import (
	"strings"
	"testing"
)

func TestParseCalls(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNames []string
		wantArgs  []string
	}{
		{
			name:      "no tags",
			text:      "Just a normal response about the weather in general.",
			wantNames: nil,
			wantArgs:  nil,
		},
		{
			name:      "tag with arguments on next line",
			text:      "<function>get_weather</function>\n{\"location\": \"Tokyo\"}",
			wantNames: []string{"get_weather"},
			wantArgs:  []string{`{"location": "Tokyo"}`},
		},
		{
			name:      "tag without arguments defaults to empty object",
			text:      "<function>get_current_time</function>\nThat is all.",
			wantNames: []string{"get_current_time"},
			wantArgs:  []string{"{}"},
		},
		{
			name:      "arguments beyond lookahead are ignored",
			text:      "<function>calculate</function>\na\nb\nc\nd\ne\n{\"expression\": \"2+2\"}",
			wantNames: []string{"calculate"},
			wantArgs:  []string{"{}"},
		},
		{
			name: "multiple tags in order",
			text: "First:\n<function>get_current_time</function>\n{}\nThen:\n" +
				"<function>calculate</function>\n{\"expression\": \"6*7\"}",
			wantNames: []string{"get_current_time", "calculate"},
			wantArgs:  []string{"{}", `{"expression": "6*7"}`},
		},
		{
			name:      "indented argument line is trimmed",
			text:      "<function>search_web</function>\n   {\"query\": \"golang\"}  ",
			wantNames: []string{"search_web"},
			wantArgs:  []string{`{"query": "golang"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := ParseCalls(tt.text)

			if len(calls) != len(tt.wantNames) {
				t.Fatalf("got %d calls, want %d", len(calls), len(tt.wantNames))
			}
			for i, call := range calls {
				if call.Function.Name != tt.wantNames[i] {
					t.Errorf("call %d: name = %q, want %q", i, call.Function.Name, tt.wantNames[i])
				}
				if call.Function.Arguments != tt.wantArgs[i] {
					t.Errorf("call %d: arguments = %q, want %q", i, call.Function.Arguments, tt.wantArgs[i])
				}
				if call.Type != "function" {
					t.Errorf("call %d: type = %q, want %q", i, call.Type, "function")
				}
				if !strings.HasPrefix(call.ID, "call_") {
					t.Errorf("call %d: id = %q, want call_ prefix", i, call.ID)
				}
			}
		})
	}
}

func TestParseCallsUniqueIDs(t *testing.T) {
	text := "<function>get_current_time</function>\n{}\n<function>get_current_time</function>\n{}"
	calls := ParseCalls(text)
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if calls[0].ID == calls[1].ID {
		t.Errorf("expected distinct call ids, both were %q", calls[0].ID)
	}
}

func TestDetectFallback(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs string
	}{
		{
			name:     "weather with location",
			text:     "I would check the weather in Tokyo for you",
			wantName: "get_weather",
			wantArgs: `{"location":"Tokyo for you"}`,
		},
		{
			name:     "weather of phrasing",
			text:     "temperature? See weather of Paris",
			wantName: "get_weather",
			wantArgs: `{"location":"Paris"}`,
		},
		{
			name:     "weather at this time routes to weather, not clock",
			text:     "The weather in London at this time is unknown to me",
			wantName: "get_weather",
			wantArgs: `{"location":"London at this time is unknown to me"}`,
		},
		{
			name:     "time without weather keyword",
			text:     "I cannot tell you the current time",
			wantName: "get_current_time",
			wantArgs: "{}",
		},
		{
			name:     "math expression",
			text:     "Let me calculate 15 + 27 for you",
			wantName: "calculate",
			wantArgs: `{"expression":"15 + 27"}`,
		},
		{
			name:     "operators without keyword still match",
			text:     "12*9 is beyond me",
			wantName: "calculate",
			wantArgs: `{"expression":"12*9"}`,
		},
		{
			name:     "search query",
			text:     "I would search for best pizza in town",
			wantName: "search_web",
			wantArgs: `{"query":"best pizza in town"}`,
		},
		{
			name:     "weather keyword without location falls through to time",
			text:     "weather depends on the time of year",
			wantName: "get_current_time",
			wantArgs: "{}",
		},
		{
			name: "plain refusal emits nothing",
			text: "Sorry, I cannot help with that",
		},
		{
			name: "calculate keyword without expression emits nothing",
			text: "I cannot calculate that",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := DetectFallback(tt.text)

			if tt.wantName == "" {
				if call != nil {
					t.Fatalf("expected no fallback, got %q", call.Function.Name)
				}
				return
			}

			if call == nil {
				t.Fatalf("expected fallback %q, got none", tt.wantName)
			}
			if call.Function.Name != tt.wantName {
				t.Errorf("name = %q, want %q", call.Function.Name, tt.wantName)
			}
			if call.Function.Arguments != tt.wantArgs {
				t.Errorf("arguments = %q, want %q", call.Function.Arguments, tt.wantArgs)
			}
			if !strings.HasPrefix(call.ID, "fallback_") {
				t.Errorf("id = %q, want fallback_ prefix", call.ID)
			}
		})
	}
}
