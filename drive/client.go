package drive

import (
	"log/slog"

	drive "google.golang.org/api/drive/v3"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/sheetkit/sheetdrive/internal/instrumentation"
)

const (
	// SpreadsheetMimeType is the MIME type of Google Sheets documents.
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

	// DefaultRetries is the number of attempts a remote call gets before
	// a timeout is reported as a *RequestError.
	DefaultRetries = 2
)

// Client wraps the Google Drive v3 API.
//
// Only the file-management operations needed by spreadsheet tooling are
// wrapped: listing, moving, deleting, exporting and permission
// management. Everything else can be reached through Service().
//
// By default requests address the user's personal drive. Call
// EnableSharedDrive to scope requests to a shared drive instead.
//
// A Client is safe for use from a single goroutine. The shared-drive
// scope and retry budget are plain fields read by every operation;
// concurrent callers sharing one Client need external synchronization.
type Client struct {
	service   *drive.Service
	sheetsSvc *sheets.Service
	driveID   string
	retries   int
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithRetries sets the retry budget for timed-out requests. The budget
// is fixed after construction. Values below 1 are ignored.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithLogger sets the logger used for warnings and progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSheetsService supplies the Sheets API service needed by worksheet
// exports. Without it only whole-document exports are available.
func WithSheetsService(svc *sheets.Service) Option {
	return func(c *Client) {
		c.sheetsSvc = svc
	}
}

// WithSharedDrive scopes requests to the given shared drive from the
// start, as if EnableSharedDrive had been called.
func WithSharedDrive(driveID string) Option {
	return func(c *Client) {
		c.driveID = driveID
	}
}

// WithMetrics enables OpenTelemetry metrics for remote calls.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client around a pre-built Drive service. Credential
// handling and service construction belong to the caller; see the auth
// package for a convenience path.
func New(service *drive.Service, opts ...Option) *Client {
	c := &Client{
		service: service,
		retries: DefaultRetries,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the underlying generated Drive service for operations
// this wrapper does not cover.
func (c *Client) Service() *drive.Service {
	return c.service
}

// EnableSharedDrive makes subsequent requests address the given shared
// drive instead of the user's personal drive.
func (c *Client) EnableSharedDrive(driveID string) {
	c.driveID = driveID
}

// DisableSharedDrive restores the default behaviour of addressing the
// user's personal drive.
func (c *Client) DisableSharedDrive() {
	c.driveID = ""
}

func (c *Client) sharedDriveEnabled() bool {
	return c.driveID != ""
}
