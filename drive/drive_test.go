package drive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// newTestClient builds a Client whose generated services talk to an
// httptest server running the given handler.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	driveSvc, err := drive.NewService(ctx,
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("failed to create drive service: %v", err)
	}
	sheetsSvc, err := sheets.NewService(ctx,
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("failed to create sheets service: %v", err)
	}

	base := []Option{
		WithSheetsService(sheetsSvc),
		WithLogger(discardLogger()),
	}
	return New(driveSvc, append(base, opts...)...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// apiError writes a Drive-style JSON error with the given status and
// message.
func apiError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error": {"code": ` + httpStatusString(status) + `, "message": "` + message + `"}}`))
}

func httpStatusString(status int) string {
	switch status {
	case http.StatusForbidden:
		return "403"
	case http.StatusInternalServerError:
		return "500"
	default:
		return "400"
	}
}
