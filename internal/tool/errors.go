package tool

import (
	"errors"
	"fmt"

	"SketchBoard/internal/state"
)

// ErrInvalidTool matches every InvalidToolError.
var ErrInvalidTool = errors.New("invalid tool")

// InvalidToolError reports a tool value or name the policy does not know.
type InvalidToolError struct {
	// Tool is the offending value when the error came from Decide.
	Tool state.Tool

	// Name is the offending name when the error came from Parse.
	Name string
}

func (e *InvalidToolError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid tool %q", e.Name)
	}
	return fmt.Sprintf("invalid tool %s", e.Tool)
}

// Is lets errors.Is match ErrInvalidTool.
func (e *InvalidToolError) Is(target error) bool {
	return target == ErrInvalidTool
}
