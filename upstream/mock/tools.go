package mock

import (
	"context"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// Builtin tools. The slow one exercises the 202 deferral path; the shell
// one mirrors the editor plugin script-execution tools.
const (
	toolEcho     = "echo"
	toolRunCmd   = "run_command"
	toolLongTask = "long_task"
)

func (s *Service) listTools() *schema.ListToolsResult {
	return &schema.ListToolsResult{
		Tools: []schema.Tool{
			{
				Name:        toolEcho,
				Description: description("Echo the text argument back"),
				InputSchema: schema.ToolInputSchema{Type: "object"},
			},
			{
				Name:        toolRunCmd,
				Description: description("Run a shell command and return its output"),
				InputSchema: schema.ToolInputSchema{Type: "object"},
			},
			{
				Name:        toolLongTask,
				Description: description("Long-running call resolved through an event stream"),
				InputSchema: schema.ToolInputSchema{Type: "object"},
			},
		},
	}
}

func (s *Service) runTool(ctx context.Context, params *schema.CallToolRequestParams) (*schema.CallToolResult, *jsonrpc.Error) {
	switch params.Name {
	case toolEcho:
		text, _ := params.Arguments["text"].(string)
		return textResult(text, false), nil
	case toolLongTask:
		text, _ := params.Arguments["text"].(string)
		if text == "" {
			text = "done"
		}
		return textResult(text, false), nil
	case toolRunCmd:
		return s.runCommand(ctx, params)
	}
	return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("unknown tool %q", params.Name), nil)
}

func (s *Service) runCommand(ctx context.Context, params *schema.CallToolRequestParams) (*schema.CallToolResult, *jsonrpc.Error) {
	command, _ := params.Arguments["command"].(string)
	if command == "" {
		return nil, jsonrpc.NewInvalidParamsError("command is required", nil)
	}
	if s.shell == nil {
		return nil, jsonrpc.NewInternalError("shell service unavailable", nil)
	}
	output, code, err := s.shell.Run(ctx, command)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return textResult(output, code != 0), nil
}

func textResult(text string, isError bool) *schema.CallToolResult {
	result := &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{{Text: text, Type: "text"}},
	}
	if isError {
		result.IsError = &isError
	}
	return result
}

func description(text string) *string {
	return &text
}
