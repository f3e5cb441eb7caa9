// Package mcp provides the MCP (Model Context Protocol) server
// implementation, exposing the registry as tools for AI assistants.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/greet-cli/internal/domain"
	"github.com/xvierd/greet-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	registry ports.Registry
	greeter  ports.Greeter
	ctx      context.Context
	cancel   context.CancelFunc
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// NewServer creates a new MCP server instance.
func NewServer(registry ports.Registry, greeter ports.Greeter) *Server {
	s := &Server{
		registry: registry,
		greeter:  greeter,
	}

	s.server = server.NewMCPServer(
		"greet-registry",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: lookup_identifier
	lookupTool := mcp.NewTool(
		"lookup_identifier",
		mcp.WithDescription("Look up the identifier assigned to a name; reports absence without registering"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The name to look up (case-sensitive)"),
		),
	)
	s.server.AddTool(lookupTool, s.handleLookupIdentifier)

	// Tool: register_name
	registerTool := mcp.NewTool(
		"register_name",
		mcp.WithDescription("Register a name, minting an identifier on first use; idempotent for known names"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The name to register (case-sensitive)"),
		),
	)
	s.server.AddTool(registerTool, s.handleRegisterName)

	// Tool: greet
	greetTool := mcp.NewTool(
		"greet",
		mcp.WithDescription("Produce the greeting for a name, registering it on first use"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("The name to greet"),
		),
	)
	s.server.AddTool(greetTool, s.handleGreet)

	// Tool: list_names
	s.server.AddTool(
		mcp.NewTool(
			"list_names",
			mcp.WithDescription("List all registered names in registration order"),
		),
		s.handleListNames,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// handleLookupIdentifier handles the lookup_identifier tool.
func (s *Server) handleLookupIdentifier(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")

	identifier, err := s.registry.Retrieve(ctx, name)
	result := map[string]interface{}{
		"name":       name,
		"identifier": nil,
		"registered": false,
	}

	switch {
	case errors.Is(err, domain.ErrNameNotFound):
		// identifier stays null
	case err != nil:
		return nil, fmt.Errorf("failed to retrieve identifier: %w", err)
	default:
		result["identifier"] = identifier
		result["registered"] = true
	}

	return marshalResult(result)
}

// handleRegisterName handles the register_name tool.
func (s *Server) handleRegisterName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")

	identifier, err := s.registry.Generate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to register name: %w", err)
	}

	return marshalResult(map[string]interface{}{
		"name":       name,
		"identifier": identifier,
	})
}

// handleGreet handles the greet tool.
func (s *Server) handleGreet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")

	greeting, minted, err := s.greeter.Greet(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to greet: %w", err)
	}

	return marshalResult(map[string]interface{}{
		"greeting":         greeting,
		"newly_registered": minted,
	})
}

// handleListNames handles the list_names tool.
func (s *Server) handleListNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.registry.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list names: %w", err)
	}

	if names == nil {
		names = []string{}
	}
	return marshalResult(map[string]interface{}{
		"names": names,
		"count": len(names),
	})
}

// marshalResult renders a tool result as indented JSON text.
func marshalResult(result map[string]interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
