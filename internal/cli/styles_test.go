package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"success", FormatSuccess("Saved"), SuccessIcon + " Saved"},
		{"error", FormatError("Nope"), ErrorIcon + " Nope"},
		{"warning", FormatWarning("Careful"), WarningIcon + " Careful"},
		{"info", FormatInfo("FYI"), InfoIcon + " FYI"},
		{"title", FormatTitle("Financial Summary"), LedgerIcon + " Financial Summary"},
		{"prompt", FormatPrompt("Amount: "), "Amount:"},
		{"income amount", StyleAmount(12, "$12.00"), "$12.00"},
		{"expense amount", StyleAmount(-3, "$-3.00"), "$-3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.got, tt.want)
		})
	}
}
