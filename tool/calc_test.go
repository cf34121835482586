package tool

import (
	"context"
	"testing"

	ai "github.com/cmathias/agentloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   string
	}{
		{"addition", "2+2", "`2+2` = **4**"},
		{"precedence", "2+3*4", "`2+3*4` = **14**"},
		{"parentheses", "(2+3)*4", "`(2+3)*4` = **20**"},
		{"division", "18/100*94.50", "`18/100*94.50` = **17.01**"},
		{"modulo", "10%3", "`10%3` = **1**"},
		{"unary minus", "-5+3", "`-5+3` = **-2**"},
		{"nested parens", "((1+2)*(3+4))", "`((1+2)*(3+4))` = **21**"},
		{"whitespace", " 1 + 2 ", "` 1 + 2 ` = **3**"},
		{"decimal result", "1/3", "`1/3` = **0.333333**"},
		{"leading dot", ".5*2", "`.5*2` = **1**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calculate(tt.expression))
		})
	}
}

func TestCalculate_RejectsInvalidCharacters(t *testing.T) {
	const rejection = "Error: Invalid characters. Only numbers and +, -, *, /, %, () allowed."

	tests := []struct {
		name       string
		expression string
	}{
		{"code injection", "2+2; process.exit()"},
		{"function call", "alert(1)"},
		{"letters", "two plus two"},
		{"empty", ""},
		{"exponent operator", "2^3"},
		{"variable reference", "x+1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, rejection, Calculate(tt.expression))
		})
	}
}

func TestCalculate_EvaluationErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		contains   string
	}{
		{"division by zero", "1/0", "division by zero"},
		{"modulo by zero", "1%0", "modulo by zero"},
		{"unbalanced paren", "(1+2", "missing closing parenthesis"},
		{"trailing operator", "1+", "unexpected end of expression"},
		{"double dot", "1..2", "malformed number"},
		{"bare dot", ".", "malformed number"},
		{"empty parens", "()", "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Calculate(tt.expression)
			assert.Contains(t, out, "Calculation error:")
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestCalculatorTool_Handler(t *testing.T) {
	reg := NewCalculatorTool()
	assert.Equal(t, "calculate", reg.Tool.Name)
	assert.Equal(t, "Arithmetic Engine", reg.Tool.Source)

	t.Run("evaluates valid expression", func(t *testing.T) {
		out, err := reg.Handler(context.Background(), ai.ToolCall{
			Name:      "calculate",
			Arguments: `{"expression":"6*7"}`,
		})
		require.NoError(t, err)
		assert.Equal(t, "`6*7` = **42**", out)
	})

	t.Run("malformed arguments never raise", func(t *testing.T) {
		out, err := reg.Handler(context.Background(), ai.ToolCall{
			Name:      "calculate",
			Arguments: `not json`,
		})
		require.NoError(t, err)
		assert.Contains(t, out, "Error:")
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "4", formatNumber(4.0))
	assert.Equal(t, "-17", formatNumber(-17.0))
	assert.Equal(t, "0.333333", formatNumber(1.0/3.0))
	assert.Equal(t, "17.01", formatNumber(17.01))
}
