package canvas

import (
	"fmt"
	"strings"
)

// Tool selects how pointer input is interpreted.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolLine
	ToolRect
	ToolCircle
	ToolFill
)

var toolNames = [...]string{
	ToolBrush:  "brush",
	ToolEraser: "eraser",
	ToolLine:   "line",
	ToolRect:   "rect",
	ToolCircle: "circle",
	ToolFill:   "fill",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool returns the tool with the given name, case-insensitively.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

func (t Tool) freehand() bool { return t == ToolBrush || t == ToolEraser }

func (t Tool) shape() bool { return t == ToolLine || t == ToolRect || t == ToolCircle }
