package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/schollz/progressbar/v3"

	awsutil "coldcalc/internal/aws"
	"coldcalc/internal/logging"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	defaultOutputDir  = "output"
)

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// Type represents the output destination
type Type string

const (
	// Stdout writes the quote to the configured writer
	Stdout Type = "stdout"
	// FileSystem represents local filesystem output
	FileSystem Type = "filesystem"
	// S3 represents S3 bucket output
	S3 Type = "s3"
)

// ParseType validates a destination name
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Stdout, FileSystem, S3:
		return t, nil
	default:
		return "", fmt.Errorf("invalid output type: %s", s)
	}
}

// Config holds output configuration
type Config struct {
	Type      Type
	Format    Format
	OutputDir string
	S3Bucket  string
	S3Region  string
	Role      string // Role to assume for S3 operations
	Retry     *RetryConfig
	Stdout    io.Writer
}

// Validate checks that the destination has what it needs
func (c Config) Validate() error {
	if _, err := ParseType(string(c.Type)); err != nil {
		return err
	}
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Type == S3 {
		if c.S3Bucket == "" {
			return fmt.Errorf("--bucket is required when --output=s3")
		}
		if c.S3Region == "" {
			return fmt.Errorf("--bucket-region is required when --output=s3")
		}
	}
	return nil
}

// Writer delivers rendered quotes to their destination
type Writer struct {
	config Config
}

// NewWriter creates a new output writer with default settings
func NewWriter(config Config) *Writer {
	if config.Retry == nil {
		config.Retry = &RetryConfig{
			MaxRetries: defaultMaxRetries,
			RetryDelay: defaultRetryDelay,
		}
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Type == FileSystem && config.OutputDir == "" {
		config.OutputDir = defaultOutputDir
	}
	return &Writer{config: config}
}

// ObjectKey returns the relative location of a quote file:
// YYYY/MM/DD/quote-HH-MM-SS-<emails>.<ext>
func ObjectKey(t time.Time, emails float64, f Format) string {
	name := fmt.Sprintf("quote-%s-%.0f.%s", t.Format("15-04-05"), emails, f.Extension())
	return path.Join(t.Format("2006/01/02"), name)
}

// Write delivers data for a quote generated at t. It returns where the quote
// went: a file path, an s3:// URL, or "stdout".
func (w *Writer) Write(data []byte, t time.Time, emails float64) (string, error) {
	key := ObjectKey(t, emails, w.config.Format)

	switch w.config.Type {
	case Stdout, "":
		if _, err := w.config.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("failed to write quote: %w", err)
		}
		return string(Stdout), nil
	case FileSystem:
		p := filepath.Join(w.config.OutputDir, filepath.FromSlash(key))
		if err := writeToFileSystem(p, data); err != nil {
			return "", err
		}
		return p, nil
	case S3:
		if err := w.writeToS3WithRetry(key, data); err != nil {
			return "", err
		}
		return fmt.Sprintf("s3://%s/%s", w.config.S3Bucket, key), nil
	default:
		return "", fmt.Errorf("unsupported output type: %s", w.config.Type)
	}
}

// writeToFileSystem writes data to the local filesystem
func writeToFileSystem(p string, data []byte) error {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", p, err)
	}

	return nil
}

// writeToS3WithRetry writes data to an S3 bucket with retry logic
func (w *Writer) writeToS3WithRetry(key string, data []byte) error {
	if w.config.S3Bucket == "" {
		return fmt.Errorf("S3 bucket not specified")
	}

	var lastErr error
	for attempt := 0; attempt < w.config.Retry.MaxRetries; attempt++ {
		if attempt > 0 {
			logging.Warn("Retrying S3 upload", map[string]interface{}{
				"attempt":      attempt + 1,
				"max_attempts": w.config.Retry.MaxRetries,
				"error":        lastErr.Error(),
			})
			time.Sleep(w.config.Retry.RetryDelay)
		}

		if err := UploadToS3(w.config, key, data); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to upload to S3 after %d attempts: %w",
		w.config.Retry.MaxRetries, lastErr)
}

// UploadToS3 uploads data to the configured bucket under key, showing upload progress
func UploadToS3(config Config, key string, data []byte) error {
	sess, err := awsutil.NewSession(config.Role, config.S3Region)
	if err != nil {
		return err
	}

	uploader := s3manager.NewUploader(sess)

	reader := &progressReader{
		reader: bytes.NewReader(data),
		bar: progressbar.NewOptions64(
			int64(len(data)),
			progressbar.OptionSetDescription("Uploading to S3..."),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		),
	}

	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket:               aws.String(config.S3Bucket),
		Key:                  aws.String(key),
		Body:                 reader,
		ContentType:          aws.String(contentType(config.Format)),
		ServerSideEncryption: aws.String("aws:kms"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	logging.Debug("Uploaded quote to S3", map[string]interface{}{
		"bucket": config.S3Bucket,
		"key":    key,
		"bytes":  len(data),
	})

	return nil
}

func contentType(f Format) string {
	switch f {
	case JSON:
		return "application/json"
	case HTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// progressReader wraps an io.Reader to track progress
type progressReader struct {
	reader io.Reader
	bar    *progressbar.ProgressBar
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if barErr := r.bar.Add(n); barErr != nil {
		logging.Debug("Failed to update progress bar", map[string]interface{}{"error": barErr.Error()})
	}
	return n, err
}
