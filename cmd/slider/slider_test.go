package slider

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(args ...string) (string, error) {
	cmd := NewSliderCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestToVolume(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"0", "0 emails/mo\n"},
		{"25", "5,000 emails/mo\n"},
		{"50", "10,000 emails/mo\n"},
		{"65", "55,000 emails/mo\n"},
		{"90", "300,000 emails/mo\n"},
		{"100", "500,000 emails/mo\n"},
		{"150", "500,000 emails/mo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			out, err := executeCommand("to-volume", tt.position)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestToPosition(t *testing.T) {
	tests := []struct {
		volume string
		want   string
	}{
		{"5000", "25.00\n"},
		{"55000", "65.00\n"},
		{"300000", "90.00\n"},
		{"900000", "100.00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.volume, func(t *testing.T) {
			out, err := executeCommand("to-position", tt.volume)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	_, err := executeCommand("to-volume", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")

	_, err = executeCommand("to-position")
	assert.Error(t, err)
}
