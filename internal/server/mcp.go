package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/jonathan/sitemaker/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// MCPVersion is reported to MCP clients.
const MCPVersion = "1.0.0"

// NewMCPServer creates an MCP server exposing the normalizer, the site
// generator and the preset catalogue as tools.
func NewMCPServer(log logrus.FieldLogger) *mcpserver.MCPServer {
	if log == nil {
		log = observability.Discard()
	}

	s := mcpserver.NewMCPServer(
		"sitemaker",
		MCPVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithInstructions("sitemaker: normalize resume profiles and generate single-page portfolio sites."),
		mcpserver.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("normalize_profile",
			mcp.WithDescription("Normalize raw profile JSON into the canonical profile shape."),
			mcp.WithString("profile", mcp.Description("Raw profile as a JSON object"), mcp.Required()),
			mcp.WithNumber("max_skills", mcp.Description("Keep at most this many skills (0 keeps all)")),
			mcp.WithBoolean("canonicalize_skills", mcp.Description("Merge skill spelling variants and drop duplicates")),
		),
		mcpNormalizeProfile(log),
	)

	s.AddTool(
		mcp.NewTool("generate_site",
			mcp.WithDescription("Render a profile into a self-contained portfolio HTML page."),
			mcp.WithString("profile", mcp.Description("Profile as a JSON object"), mcp.Required()),
			mcp.WithString("settings", mcp.Description("Optional site settings as a JSON object")),
			mcp.WithString("preset", mcp.Description("Optional preset name applied over the settings")),
		),
		mcpGenerateSite(log),
	)

	s.AddTool(
		mcp.NewTool("list_presets",
			mcp.WithDescription("List the available site setting presets."),
		),
		mcpListPresets(),
	)

	s.AddTool(
		mcp.NewTool("apply_preset",
			mcp.WithDescription("Apply a named preset to site settings and return the result."),
			mcp.WithString("preset", mcp.Description("Preset name"), mcp.Required()),
			mcp.WithString("settings", mcp.Description("Optional current settings as a JSON object")),
		),
		mcpApplyPreset(),
	)

	return s
}

// ServeMCP serves the MCP tools over stdio until ctx is cancelled or in
// is closed.
func ServeMCP(ctx context.Context, log logrus.FieldLogger, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(NewMCPServer(log))
	return stdio.Listen(ctx, in, out)
}

func mcpNormalizeProfile(log logrus.FieldLogger) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := jsonArg(req, "profile")
		if !ok {
			return mcpError("profile is required"), nil
		}

		p, err := profile.NormalizeJSON(raw, profile.Options{
			MaxSkills:          req.GetInt("max_skills", 0),
			CanonicalizeSkills: req.GetBool("canonicalize_skills", false),
		})
		if err != nil {
			return mcpError(err.Error()), nil
		}
		log.WithField("skills", len(p.Skills)).Debug("mcp: profile normalized")
		return mcpJSON(p)
	}
}

func mcpGenerateSite(log logrus.FieldLogger) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := jsonArg(req, "profile")
		if !ok {
			return mcpError("profile is required"), nil
		}

		p, err := profile.NormalizeJSON(raw, profile.Options{})
		if err != nil {
			return mcpError(err.Error()), nil
		}
		rawSettings, _ := jsonArg(req, "settings")
		st, err := resolveSettings(rawSettings, req.GetString("preset", ""))
		if err != nil {
			return mcpError(err.Error()), nil
		}

		html, err := rendering.GenerateSite(p, st)
		if err != nil {
			log.WithError(err).Error("mcp: site generation failed")
			return mcpError("could not generate file"), nil
		}
		return mcpText(html), nil
	}
}

func mcpListPresets() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcpJSON(settings.Presets())
	}
}

func mcpApplyPreset() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("preset")
		if err != nil {
			return mcpError("preset is required"), nil
		}

		rawSettings, _ := jsonArg(req, "settings")
		current, err := resolveSettings(rawSettings, "")
		if err != nil {
			return mcpError(err.Error()), nil
		}

		st, err := settings.Resolve(current, name)
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpJSON(st)
	}
}

// jsonArg returns an argument as JSON. Clients may send either a JSON string
// or an already decoded object.
func jsonArg(req mcp.CallToolRequest, key string) ([]byte, bool) {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString {
		if s == "" {
			return nil, false
		}
		return []byte(s), true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return b, true
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
