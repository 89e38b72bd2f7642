// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the career queries as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/careergraph/internal/careers"
	"github.com/starford/careergraph/internal/models"
)

const datasetFormatURI = "careergraph://dataset-format"

// EngineSource supplies the live engine.
type EngineSource interface {
	Engine() *careers.Engine
}

// Server wraps the MCP server with the career tools.
type Server struct {
	mcp *server.MCPServer
	src EngineSource
}

// New creates an MCP server with all tools registered.
func New(src EngineSource, version string) *Server {
	s := &Server{src: src}

	s.mcp = server.NewMCPServer(
		"careergraph",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("paths_with_followers",
		mcp.WithDescription("Enumerate every title-progression path starting at a title, "+
			"with the people whose career history followed each path in order."),
		mcp.WithString("start_title", mcp.Required(), mcp.Description("Exact title name, e.g. Analyst")),
	), s.pathsWithFollowers)

	s.mcp.AddTool(mcp.NewTool("current_holders",
		mcp.WithDescription("List the people whose most recent title is the given title."),
		mcp.WithString("title_name", mcp.Required(), mcp.Description("Exact title name")),
	), s.currentHolders)

	s.mcp.AddTool(mcp.NewTool("titles_held_by",
		mcp.WithDescription("List the titles a person held, oldest first."),
		mcp.WithNumber("person_id", mcp.Required(), mcp.Description("Integer person id")),
	), s.titlesHeldBy)

	s.mcp.AddTool(mcp.NewTool("list_titles",
		mcp.WithDescription("List every known title name."),
	), s.listTitles)

	s.mcp.AddResource(
		mcp.NewResource(datasetFormatURI, "Dataset Format",
			mcp.WithResourceDescription("YAML format of the career dataset."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDatasetFormat,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) pathsWithFollowers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("start_title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.src.Engine().PathsWithFollowers(title))
}

func (s *Server) currentHolders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.src.Engine().CurrentHolders(title))
}

func (s *Server) titlesHeldBy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireFloat("person_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if raw != math.Trunc(raw) {
		return mcp.NewToolResultError(fmt.Sprintf("person_id must be an integer, got %v", raw)), nil
	}
	return jsonResult(s.src.Engine().TitlesHeldBy(models.PersonID(int(raw))))
}

func (s *Server) listTitles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.src.Engine().Titles())
}

func (s *Server) readDatasetFormat(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      datasetFormatURI,
			MIMEType: "text/markdown",
			Text:     DatasetFormat,
		},
	}, nil
}
