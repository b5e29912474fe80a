package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kaptinlin/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chained-agents/internal/domain"
)

// Invoker runs one invocation of a named agent. Wired to the bridge.
type Invoker interface {
	Invoke(ctx context.Context, agentName, task string, tctx *domain.TaskContext) (*domain.InvocationResult, error)
}

// Server exposes the tool catalog to MCP clients. One tool is registered per
// profile; tool arguments are validated against the generated schema before
// they reach the invoker.
type Server struct {
	mcp     *server.MCPServer
	invoker Invoker
	logger  *slog.Logger
}

// New creates an MCP server advertising one tool per profile.
func New(name, version string, profiles []domain.AgentProfile, invoker Invoker, logger *slog.Logger) (*Server, error) {
	s := &Server{
		invoker: invoker,
		logger:  logger,
	}
	s.mcp = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	compiler := jsonschema.NewCompiler()
	for _, prof := range profiles {
		d := Descriptor(prof)
		compiled, err := compiler.Compile(d.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %q: %w", d.Name, err)
		}
		s.mcp.AddTool(mcp.NewToolWithRawSchema(d.Name, d.Description, d.InputSchema), s.invokeHandler(prof.Name, compiled))
		s.logger.Debug("tool registered", "tool", d.Name, "agent", prof.Name)
	}

	return s, nil
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// invokeHandler adapts one agent to the MCP tool handler contract. Caller
// errors and bridge results both surface as tool results, never as protocol
// faults.
func (s *Server) invokeHandler(agentName string, schema *jsonschema.Schema) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		if res := schema.Validate(args); !res.IsValid() {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %s", res.Error())), nil
		}

		task, _ := args["task"].(string)
		tctx, err := taskContext(args["context"])
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid context: %v", err)), nil
		}

		result, err := s.invoker.Invoke(ctx, agentName, task, tctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal invocation result: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// taskContext decodes the optional context argument.
func taskContext(v any) (*domain.TaskContext, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tctx domain.TaskContext
	if err := json.Unmarshal(data, &tctx); err != nil {
		return nil, err
	}
	return &tctx, nil
}
