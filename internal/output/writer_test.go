package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"coldcalc/internal/calculator"
	"coldcalc/internal/format"
)

var generatedAt = time.Date(2026, 2, 14, 10, 4, 5, 0, time.UTC)

func sampleQuote(cycle calculator.BillingCycle) Quote {
	in := calculator.Input{EmailsPerMonth: 5000, BillingCycle: cycle, DomainCostPerYear: 10, InboxCostPerMonth: 3.5}
	return Quote{
		GeneratedAt: generatedAt,
		Input:       in,
		Constants:   calculator.DefaultConstants,
		Result:      calculator.ComputeCosts(in),
	}
}

func TestParseFormatAndType(t *testing.T) {
	for _, name := range []string{"text", "json", "html"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)

	for _, name := range []string{"stdout", "filesystem", "s3"} {
		typ, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, Type(name), typ)
	}
	_, err = ParseType("ftp")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "stdout text", config: Config{Type: Stdout, Format: Text}},
		{name: "bad format", config: Config{Type: Stdout, Format: "pdf"}, wantErr: "invalid output format"},
		{name: "bad type", config: Config{Type: "ftp", Format: Text}, wantErr: "invalid output type"},
		{name: "s3 without bucket", config: Config{Type: S3, Format: JSON, S3Region: "us-east-1"}, wantErr: "--bucket is required"},
		{name: "s3 without region", config: Config{Type: S3, Format: JSON, S3Bucket: "quotes"}, wantErr: "--bucket-region is required"},
		{name: "s3 complete", config: Config{Type: S3, Format: JSON, S3Bucket: "quotes", S3Region: "us-east-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "2026/02/14/quote-10-04-05-5000.json", ObjectKey(generatedAt, 5000, JSON))
	assert.Equal(t, "2026/02/14/quote-10-04-05-120000.txt", ObjectKey(generatedAt, 120000, Text))
}

func TestRenderText(t *testing.T) {
	color.NoColor = true

	data, err := Render(sampleQuote(calculator.Annual), Text, format.New("en-US"), false)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Domains:           6")
	assert.Contains(t, text, "Inboxes:           18")
	assert.Contains(t, text, "Email capacity/mo: 5,400")
	assert.Contains(t, text, "(3 inboxes per domain, 10 emails per inbox per day, 30 days/month)")
	assert.Contains(t, text, "Domains (6 x $10.00/yr)")
	assert.Contains(t, text, "Basic Plan")
	assert.Contains(t, text, "Up to 6,000 emails/mo (save $6.50/mo)")
	assert.Contains(t, text, "$159.50/mo")
	assert.Contains(t, text, "$1,914.00/yr")
}

func TestRenderTextColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	colored, err := Render(sampleQuote(calculator.Monthly), Text, format.New("en-US"), true)
	require.NoError(t, err)
	assert.Contains(t, string(colored), "\x1b[")

	plain, err := Render(sampleQuote(calculator.Monthly), Text, format.New("en-US"), false)
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "\x1b[")
}

func TestWriteFileSystemTextHasNoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	cfg := Config{Type: FileSystem, Format: Text, OutputDir: t.TempDir()}
	data, err := Render(sampleQuote(calculator.Monthly), Text, format.New("en-US"), cfg.Type == Stdout)
	require.NoError(t, err)

	location, err := NewWriter(cfg).Write(data, generatedAt, 5000)
	require.NoError(t, err)

	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "\x1b[")
	assert.Contains(t, string(content), "Infrastructure Required\n")
}

func TestRenderJSON(t *testing.T) {
	data, err := Render(sampleQuote(calculator.Monthly), JSON, format.New("en-US"), false)
	require.NoError(t, err)

	var decoded Quote
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 6, decoded.Result.DomainsNeeded)
	assert.Equal(t, "Basic", decoded.Result.Tier.Name)
	assert.Equal(t, calculator.Monthly, decoded.Input.BillingCycle)
	assert.InDelta(t, 166.0, decoded.Result.TotalMonthlyCost, 1e-9)
}

func TestRenderHTML(t *testing.T) {
	data, err := Render(sampleQuote(calculator.Monthly), HTML, format.New("en-US"), false)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Basic Plan")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleQuote(calculator.Monthly), "pdf", format.New("en-US"), false)
	assert.Error(t, err)
}

func TestWriteStdout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Config{Type: Stdout, Format: Text, Stdout: &buf})

	location, err := w.Write([]byte("quote\n"), generatedAt, 5000)
	require.NoError(t, err)
	assert.Equal(t, "stdout", location)
	assert.Equal(t, "quote\n", buf.String())
}

func TestWriteFileSystem(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Config{Type: FileSystem, Format: JSON, OutputDir: dir})

	location, err := w.Write([]byte(`{"ok":true}`), generatedAt, 5000)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026", "02", "14", "quote-10-04-05-5000.json"), location)

	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(content))
}

func TestNewWriterDefaults(t *testing.T) {
	w := NewWriter(Config{Type: FileSystem, Format: Text})
	assert.Equal(t, "output", w.config.OutputDir)
	assert.Equal(t, defaultMaxRetries, w.config.Retry.MaxRetries)
	assert.NotNil(t, w.config.Stdout)
}

func TestWriteS3Retries(t *testing.T) {
	attempts := 0
	patch, err := mpatch.PatchMethod(UploadToS3, func(config Config, key string, data []byte) error {
		attempts++
		if attempts < 2 {
			return errors.New("throttled")
		}
		assert.Equal(t, "quotes", config.S3Bucket)
		assert.Equal(t, "2026/02/14/quote-10-04-05-5000.html", key)
		return nil
	})
	require.NoError(t, err)
	defer func() { _ = patch.Unpatch() }()

	w := NewWriter(Config{
		Type:     S3,
		Format:   HTML,
		S3Bucket: "quotes",
		S3Region: "us-east-1",
		Retry:    &RetryConfig{MaxRetries: 3, RetryDelay: time.Millisecond},
	})

	location, err := w.Write([]byte("<html></html>"), generatedAt, 5000)
	require.NoError(t, err)
	assert.Equal(t, "s3://quotes/2026/02/14/quote-10-04-05-5000.html", location)
	assert.Equal(t, 2, attempts)
}

func TestWriteS3GivesUp(t *testing.T) {
	patch, err := mpatch.PatchMethod(UploadToS3, func(config Config, key string, data []byte) error {
		return errors.New("access denied")
	})
	require.NoError(t, err)
	defer func() { _ = patch.Unpatch() }()

	w := NewWriter(Config{
		Type:     S3,
		Format:   JSON,
		S3Bucket: "quotes",
		S3Region: "us-east-1",
		Retry:    &RetryConfig{MaxRetries: 2, RetryDelay: time.Millisecond},
	})

	_, err = w.Write([]byte("{}"), generatedAt, 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Contains(t, err.Error(), "access denied")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType(JSON))
	assert.Equal(t, "text/html; charset=utf-8", contentType(HTML))
	assert.Equal(t, "text/plain; charset=utf-8", contentType(Text))
}
