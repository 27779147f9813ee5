package display

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arthur-debert/sidechan/pkg/render"
)

const none = "-"

// ToolsTable lists registered tools. An empty list still renders the
// header.
func ToolsTable(tools []mcp.Tool, maxRows int) *render.Table {
	t := render.NewTable("Name", "Description")
	t.Title = "Registered Tools"
	t.MaxRows = maxRows
	for _, tool := range tools {
		t.AddRow(tool.Name, orNone(tool.Description))
	}
	return t
}

// ResourcesTable lists registered resources.
func ResourcesTable(resources []mcp.Resource, maxRows int) *render.Table {
	t := render.NewTable("URI", "Name", "Type")
	t.Title = "Registered Resources"
	t.MaxRows = maxRows
	for _, r := range resources {
		t.AddRow(r.URI, orNone(r.Name), orNone(r.MIMEType))
	}
	return t
}

// PromptsTable lists registered prompts with their argument names.
// Required arguments are marked with an asterisk.
func PromptsTable(prompts []mcp.Prompt, maxRows int) *render.Table {
	t := render.NewTable("Name", "Arguments", "Description")
	t.Title = "Registered Prompts"
	t.MaxRows = maxRows
	for _, p := range prompts {
		args := make([]string, 0, len(p.Arguments))
		for _, a := range p.Arguments {
			name := a.Name
			if a.Required {
				name += "*"
			}
			args = append(args, name)
		}
		t.AddRow(p.Name, orNone(strings.Join(args, ", ")), orNone(p.Description))
	}
	return t
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}
