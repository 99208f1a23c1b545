package basecase

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/basecase/kit"
)

// RegisterMCP exposes the session as MCP tools, so agent tooling can drive
// the browser through this Case.
func (c *Case) RegisterMCP(srv *mcp.Server) {
	c.registerOpenTool(srv)
	c.registerClickTool(srv)
	c.registerTypeTool(srv)
	c.registerTextTool(srv)
	c.registerScreenshotTool(srv)
	c.registerRecorderExportTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func decodeInto[T any](req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	var r T
	if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &r}, nil
}

// --- open ---

type openReq struct {
	URL string `json:"url"`
}

func (c *Case) registerOpenTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "case_open",
		Description: "Navigate the browser session to a URL and wait for the page to load.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "URL to open"},
		}, []string{"url"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*openReq)
		if err := c.Open(r.URL); err != nil {
			return nil, err
		}
		url, _ := c.CurrentURL()
		title, _ := c.Title()
		return map[string]string{"url": url, "title": title}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[openReq])
}

// --- click ---

type clickReq struct {
	Selector string `json:"selector"`
}

func (c *Case) registerClickTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "case_click",
		Description: "Click the element matching a selector (CSS, XPath, link=, name=).",
		InputSchema: inputSchema(map[string]any{
			"selector": map[string]any{"type": "string", "description": "Element locator"},
		}, []string{"selector"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*clickReq)
		if err := c.Click(r.Selector); err != nil {
			return nil, err
		}
		url, _ := c.CurrentURL()
		return map[string]string{"clicked": r.Selector, "url": url}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[clickReq])
}

// --- type ---

type typeReq struct {
	Selector string `json:"selector"`
	Text     string `json:"text"`
}

func (c *Case) registerTypeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "case_type",
		Description: "Clear a form field and type text into it.",
		InputSchema: inputSchema(map[string]any{
			"selector": map[string]any{"type": "string", "description": "Field locator"},
			"text":     map[string]any{"type": "string", "description": "Text to type"},
		}, []string{"selector", "text"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*typeReq)
		if err := c.Type(r.Selector, r.Text); err != nil {
			return nil, err
		}
		return map[string]string{"typed": r.Selector}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[typeReq])
}

// --- text ---

type textReq struct {
	Selector string `json:"selector"`
}

func (c *Case) registerTextTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "case_text",
		Description: "Read the rendered text of the element matching a selector.",
		InputSchema: inputSchema(map[string]any{
			"selector": map[string]any{"type": "string", "description": "Element locator"},
		}, []string{"selector"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*textReq)
		text, err := c.Text(r.Selector)
		if err != nil {
			return nil, err
		}
		return map[string]string{"selector": r.Selector, "text": text}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[textReq])
}

// --- screenshot ---

type screenshotReq struct {
	Path string `json:"path"`
}

func (c *Case) registerScreenshotTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "case_screenshot",
		Description: "Capture the viewport as PNG. Relative paths land in the artifact directory.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Output file path"},
		}, []string{"path"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*screenshotReq)
		if err := c.Screenshot(r.Path); err != nil {
			return nil, err
		}
		path := r.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.opts.ArtifactDir, path)
		}
		return map[string]string{"path": path}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[screenshotReq])
}

// --- recorder export ---

type recorderExportReq struct {
	Name string `json:"name"`
}

func (c *Case) registerRecorderExportTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "recorder_export",
		Description: "Drain the interaction recorder and write a generated Go test file.",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Recording name, becomes the test name"},
		}, []string{"name"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*recorderExportReq)
		path, err := c.ExportRecording(r.Name)
		if err != nil {
			return nil, err
		}
		return map[string]string{"path": path}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[recorderExportReq])
}
