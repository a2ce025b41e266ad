// Package mcpbridge converts Model Context Protocol tool metadata and tool
// results into the completion schema types.
package mcpbridge

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	anthropictypes "github.com/terraform-industries/anthropic-types"
	"github.com/terraform-industries/anthropic-types/internal/sliceutils"
)

var emptyObjectSchema = map[string]any{"type": "object", "properties": map[string]any{}}

// ToolDefinition converts an MCP tool into a tool definition. The input schema
// is validated with the same rules as a decoded request, so a schema property
// without a description is rejected with a path such as
// "input_schema.properties.city.description".
func ToolDefinition(tool *mcp.Tool) (anthropictypes.ToolDefinition, error) {
	if tool == nil {
		return anthropictypes.ToolDefinition{}, fmt.Errorf("mcpbridge: nil tool")
	}
	var schema any = emptyObjectSchema
	if tool.InputSchema != nil {
		schema = tool.InputSchema
	}
	rawSchema, err := json.Marshal(schema)
	if err != nil {
		return anthropictypes.ToolDefinition{}, fmt.Errorf("serialise MCP tool schema for %s: %w", tool.Name, err)
	}

	payload, err := json.Marshal(struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		InputSchema json.RawMessage `json:"input_schema"`
	}{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: rawSchema,
	})
	if err != nil {
		return anthropictypes.ToolDefinition{}, err
	}
	return anthropictypes.DecodeToolDefinition(payload)
}

// ToolDefinitions converts every tool of an MCP tool listing. The first failure
// is reported with the index of the offending tool.
func ToolDefinitions(tools []*mcp.Tool) ([]anthropictypes.ToolDefinition, error) {
	return sliceutils.MapErr(tools, func(i int, tool *mcp.Tool) (anthropictypes.ToolDefinition, error) {
		def, err := ToolDefinition(tool)
		if err != nil {
			return anthropictypes.ToolDefinition{}, anthropictypes.WrapPath(err, fmt.Sprintf("[%d]", i))
		}
		return def, nil
	})
}

// ToolResult converts the outcome of an MCP tool call into a tool_result block
// answering toolUseID. Each MCP content item becomes one opaque result item in
// its MCP wire form. is_error is set only when the call reported an error.
func ToolResult(toolUseID string, result *mcp.CallToolResult) (anthropictypes.ContentBlock, error) {
	if result == nil {
		return anthropictypes.ContentBlock{}, fmt.Errorf("mcpbridge: nil tool result for %s", toolUseID)
	}
	items, err := sliceutils.MapErr(result.Content, func(i int, content mcp.Content) (json.RawMessage, error) {
		raw, err := json.Marshal(content)
		if err != nil {
			return nil, fmt.Errorf("serialise MCP content %d for %s: %w", i, toolUseID, err)
		}
		return raw, nil
	})
	if err != nil {
		return anthropictypes.ContentBlock{}, err
	}

	var isError *bool
	if result.IsError {
		flagged := true
		isError = &flagged
	}
	return anthropictypes.NewToolResultBlock(toolUseID, items, isError), nil
}
