package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpay-settlement/pkg/logger"
)

func TestParseAlertDestination(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"international number", "+234 803 123 4567", "2348031234567@s.whatsapp.net", false},
		{"user jid", "2348031234567@s.whatsapp.net", "2348031234567@s.whatsapp.net", false},
		{"group jid", "120363025246125486@g.us", "120363025246125486@g.us", false},
		{"too short", "12345", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jid, err := ParseAlertDestination(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, jid.String())
		})
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logger.NewWithWriter("INFO", &buf))

	require.NoError(t, n.Notify(context.Background(), "Settlement ref-1 failed"))
	assert.Contains(t, buf.String(), "Settlement ref-1 failed")
	assert.Equal(t, "log", n.Status()["channel"])
}
