package tools

import (
	"testing"
)

func TestToOllamaTools(t *testing.T) {
	schemas := NewRegistry().Schemas()
	converted := ToOllamaTools(schemas)

	if len(converted) != len(schemas) {
		t.Fatalf("got %d tools, want %d", len(converted), len(schemas))
	}

	for i, tool := range converted {
		if tool.Type != "function" {
			t.Errorf("tool %d type = %q, want function", i, tool.Type)
		}
		if tool.Function.Name != schemas[i].Function.Name {
			t.Errorf("tool %d name = %q, want %q", i, tool.Function.Name, schemas[i].Function.Name)
		}
		if tool.Function.Parameters.Type != "object" {
			t.Errorf("tool %d parameters type = %q, want object", i, tool.Function.Parameters.Type)
		}
	}

	var weather *struct {
		required   []string
		properties map[string]bool
	}
	for _, tool := range converted {
		if tool.Function.Name != "get_weather" {
			continue
		}
		props := make(map[string]bool, len(tool.Function.Parameters.Properties))
		for name := range tool.Function.Parameters.Properties {
			props[name] = true
		}
		weather = &struct {
			required   []string
			properties map[string]bool
		}{tool.Function.Parameters.Required, props}
	}
	if weather == nil {
		t.Fatal("get_weather missing from converted tools")
	}
	if !weather.properties["location"] {
		t.Error("get_weather lost its location property")
	}
	if len(weather.required) != 1 || weather.required[0] != "location" {
		t.Errorf("get_weather required = %v, want [location]", weather.required)
	}
}

func TestToOllamaToolsPropertyFields(t *testing.T) {
	schemas := NewRegistry().Schemas()
	converted := ToOllamaTools(schemas)

	for _, tool := range converted {
		if tool.Function.Name != "calculate" {
			continue
		}
		prop, ok := tool.Function.Parameters.Properties["expression"]
		if !ok {
			t.Fatal("calculate lost its expression property")
		}
		if len(prop.Type) != 1 || prop.Type[0] != "string" {
			t.Errorf("expression type = %v, want [string]", prop.Type)
		}
		if prop.Description == "" {
			t.Error("expression description was dropped")
		}
		return
	}
	t.Fatal("calculate missing from converted tools")
}

func TestToOpenAITools(t *testing.T) {
	schemas := NewRegistry().Schemas()
	converted := ToOpenAITools(schemas)

	if len(converted) != len(schemas) {
		t.Fatalf("got %d tools, want %d", len(converted), len(schemas))
	}

	for i, tool := range converted {
		if tool.OfFunction == nil {
			t.Fatalf("tool %d is not a function tool", i)
		}
		fn := tool.OfFunction.Function
		if fn.Name != schemas[i].Function.Name {
			t.Errorf("tool %d name = %q, want %q", i, fn.Name, schemas[i].Function.Name)
		}
		if fn.Parameters["type"] != "object" {
			t.Errorf("tool %d parameters type = %v, want object", i, fn.Parameters["type"])
		}
	}
}

func TestToAnthropicTools(t *testing.T) {
	schemas := NewRegistry().Schemas()
	converted := ToAnthropicTools(schemas)

	if len(converted) != len(schemas) {
		t.Fatalf("got %d tools, want %d", len(converted), len(schemas))
	}

	for i, tool := range converted {
		if tool.OfTool == nil {
			t.Fatalf("tool %d has no OfTool variant", i)
		}
		if tool.OfTool.Name != schemas[i].Function.Name {
			t.Errorf("tool %d name = %q, want %q", i, tool.OfTool.Name, schemas[i].Function.Name)
		}
	}
}

func TestConvertersHandleEmptyInput(t *testing.T) {
	if got := ToOllamaTools(nil); got != nil {
		t.Errorf("ToOllamaTools(nil) = %v, want nil", got)
	}
	if got := ToOpenAITools(nil); got != nil {
		t.Errorf("ToOpenAITools(nil) = %v, want nil", got)
	}
	if got := ToAnthropicTools(nil); got != nil {
		t.Errorf("ToAnthropicTools(nil) = %v, want nil", got)
	}
}
