package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSignature(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantBody string
		wantSig  string
	}{
		{
			name:     "empty input",
			in:       "",
			wantBody: "",
			wantSig:  "",
		},
		{
			name:     "no signature",
			in:       "The instrument is back online now.",
			wantBody: "The instrument is back online now.",
			wantSig:  "",
		},
		{
			name:     "closing phrase with known agent",
			in:       "The instrument is back online now.\nThanks,\nWilliam",
			wantBody: "The instrument is back online now.",
			wantSig:  "Thanks,\nWilliam",
		},
		{
			name:     "best regards with full name",
			in:       "Your request has been forwarded.\nBest regards\nVinod Rajendran\nSupport Team",
			wantBody: "Your request has been forwarded.",
			wantSig:  "Best regards\nVinod Rajendran\nSupport Team",
		},
		{
			name:     "closing phrase with unknown name keeps body whole",
			in:       "All set on our side.\nThanks,\nRandom Person",
			wantBody: "All set on our side.\nThanks,\nRandom Person",
			wantSig:  "",
		},
		{
			name:     "two line block fallback",
			in:       "Please try again.\nNadia\n\nNadia D. Clark\nSenior Support Specialist",
			wantBody: "Please try again.",
			wantSig:  "Nadia\n\nNadia D. Clark\nSenior Support Specialist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, sig := SplitSignature(tt.in)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantSig, sig)
		})
	}
}
