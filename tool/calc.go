package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	ai "github.com/cmathias/agentloop"
)

// calcArgs defines arguments for the calculator tool.
type calcArgs struct {
	Expression string `json:"expression" desc:"Math expression, e.g. 18/100*94.50" required:"true"`
}

// calcAllowed is the allow-list for calculator input. Anything outside
// digits, + - * / % ( ) . and whitespace is rejected before parsing, so no
// form of code can ever reach the evaluator.
var calcAllowed = regexp.MustCompile(`^[0-9+\-*/%().\s]+$`)

// NewCalculatorTool creates the calculate tool: a restricted arithmetic
// evaluator over + - * / % ( ) and numeric literals. The expression is
// parsed with a small recursive-descent parser; there is no dynamic
// evaluation of any kind.
func NewCalculatorTool() Registration {
	return Registration{
		Tool: ai.Tool{
			Name:        "calculate",
			Description: "Calculate math expressions. Args: expression (required, e.g. '18/100*94.50')",
			Parameters:  ai.MustSchemaFor[calcArgs](),
			Source:      "Arithmetic Engine",
		},
		Handler: func(ctx context.Context, call ai.ToolCall) (string, error) {
			var args calcArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return fmt.Sprintf("Error: invalid calculator arguments: %v", err), nil
			}
			return Calculate(args.Expression), nil
		},
	}
}

// Calculate evaluates a restricted arithmetic expression and formats the
// outcome. Invalid input yields an error string, never a panic or an error.
func Calculate(expression string) string {
	if expression == "" || !calcAllowed.MatchString(expression) {
		return "Error: Invalid characters. Only numbers and +, -, *, /, %, () allowed."
	}

	result, err := evalExpression(expression)
	if err != nil {
		return fmt.Sprintf("Calculation error: %v", err)
	}

	return fmt.Sprintf("`%s` = **%s**", expression, formatNumber(result))
}

// formatNumber renders whole results as integers and rounds the rest to six
// decimal places.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	rounded := math.Round(v*1e6) / 1e6
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
