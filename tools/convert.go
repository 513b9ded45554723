package tools

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ToOllamaTools converts registry schemas to the Ollama API tool format.
func ToOllamaTools(schemas []Schema) []api.Tool {
	if len(schemas) == 0 {
		return nil
	}

	result := make([]api.Tool, 0, len(schemas))
	for _, s := range schemas {
		result = append(result, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        s.Function.Name,
				Description: s.Function.Description,
				Parameters:  toOllamaParameters(s),
			},
		})
	}
	return result
}

func toOllamaParameters(s Schema) api.ToolFunctionParameters {
	params := api.ToolFunctionParameters{
		Type:       s.Function.Parameters.Type,
		Required:   s.Function.Parameters.Required,
		Properties: make(map[string]api.ToolProperty),
	}
	for name, value := range s.Function.Parameters.Properties {
		params.Properties[name] = toOllamaProperty(value)
	}
	return params
}

func toOllamaProperty(value any) api.ToolProperty {
	prop := api.ToolProperty{}

	propMap, ok := value.(map[string]any)
	if !ok {
		data, err := json.Marshal(value)
		if err != nil {
			return prop
		}
		if err := json.Unmarshal(data, &propMap); err != nil {
			return prop
		}
	}

	if typeVal, ok := propMap["type"]; ok {
		switch t := typeVal.(type) {
		case string:
			prop.Type = api.PropertyType{t}
		case []string:
			prop.Type = api.PropertyType(t)
		case []any:
			types := make([]string, 0, len(t))
			for _, v := range t {
				if str, ok := v.(string); ok {
					types = append(types, str)
				}
			}
			prop.Type = api.PropertyType(types)
		}
	}
	if desc, ok := propMap["description"].(string); ok {
		prop.Description = desc
	}
	if enumVal, ok := propMap["enum"].([]any); ok {
		prop.Enum = enumVal
	}
	if items, ok := propMap["items"]; ok {
		prop.Items = items
	}
	return prop
}

// ToOpenAITools converts registry schemas to the OpenAI chat-completions
// tool format. Both sides are JSON Schema; the conversion is structural.
func ToOpenAITools(schemas []Schema) []openai.ChatCompletionToolUnionParam {
	if len(schemas) == 0 {
		return nil
	}

	result := make([]openai.ChatCompletionToolUnionParam, 0, len(schemas))
	for _, s := range schemas {
		params := openai.FunctionParameters{
			"type":       s.Function.Parameters.Type,
			"properties": s.Function.Parameters.Properties,
		}
		if len(s.Function.Parameters.Required) > 0 {
			params["required"] = s.Function.Parameters.Required
		}

		result = append(result, openai.ChatCompletionFunctionTool(
			openai.FunctionDefinitionParam{
				Name:        s.Function.Name,
				Description: openai.String(s.Function.Description),
				Parameters:  params,
			},
		))
	}
	return result
}

// ToAnthropicTools converts registry schemas to the Anthropic tool-use format.
func ToAnthropicTools(schemas []Schema) []anthropic.ToolUnionParam {
	if len(schemas) == 0 {
		return nil
	}

	result := make([]anthropic.ToolUnionParam, 0, len(schemas))
	for _, s := range schemas {
		inputSchema := anthropic.ToolInputSchemaParam{
			Properties: s.Function.Parameters.Properties,
		}
		if len(s.Function.Parameters.Required) > 0 {
			inputSchema.Required = s.Function.Parameters.Required
		}

		tool := anthropic.ToolUnionParamOfTool(inputSchema, s.Function.Name)
		if s.Function.Description != "" {
			tool.OfTool.Description = anthropic.String(s.Function.Description)
		}
		result = append(result, tool)
	}
	return result
}
