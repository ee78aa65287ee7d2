package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "parsed returns green", status: StatusParsed, wantFG: ColorGreen},
		{name: "listed returns faint", status: StatusListed, wantDim: true},
		{name: "skipped returns yellow", status: StatusSkipped, wantFG: ColorYellow},
		{name: "broken returns bold red", status: StatusBroken, wantBold: true, wantFG: ColorRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := statusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatModuleLine(t *testing.T) {
	result := FormatModuleLine("Compiler", "GCC", "12.2.0", StatusParsed)
	assert.Contains(t, result, "Compiler/GCC/12.2.0")
	assert.Contains(t, result, StatusParsed)
	assert.True(t, strings.HasPrefix(stripAnsi(result), "m:"))

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := stripAnsi(FormatModuleLine("Bio", "BLAST", "2.14.0", StatusBroken))
		line2 := stripAnsi(FormatModuleLine("Compiler", "GCCcore", "12.2.0", StatusBroken))
		assert.Equal(t, strings.Index(line1, StatusBroken), strings.Index(line2, StatusBroken))
	})
}

func TestFormatCheckmark(t *testing.T) {
	result := FormatCheckmark("Collected 12 packages")
	assert.Contains(t, result, "✔")
	assert.Contains(t, result, "Collected 12 packages")
}

func TestFormatVetCheck(t *testing.T) {
	withDetail := stripAnsi(FormatVetCheck("Config file found", "~/.mods2docs/config.yaml"))
	assert.Contains(t, withDetail, "~/.mods2docs/config.yaml")

	noDetail := stripAnsi(FormatVetCheck("Schema validation passed", ""))
	assert.False(t, strings.HasSuffix(noDetail, " "))

	line1 := stripAnsi(FormatVetCheck("Config file found", "a"))
	line2 := stripAnsi(FormatVetCheck("Schema validation passed", "b"))
	assert.Equal(t, strings.Index(line1, " a"), strings.Index(line2, " b"))
}

func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}
	return result.String()
}
