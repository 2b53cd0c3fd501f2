package drive

import (
	"context"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/sheetkit/sheetdrive/internal/logging"
)

// List fetches file metadata across all result pages. The continuation
// token is followed until the final page; the returned slice preserves
// page order.
//
// When the API reports an incomplete search of the corpus a warning is
// logged but the collected results are still returned.
func (c *Client) List(ctx context.Context, opts *ListOptions) ([]*FileMeta, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	var files []*FileMeta
	pageToken := ""
	incomplete := false

	for {
		call := c.service.Files.List().Context(ctx)
		if opts.Query != "" {
			call = call.Q(opts.Query)
		}
		if opts.Fields != "" {
			call = call.Fields(googleapi.Field(withListPageFields(opts.Fields)))
		}
		if opts.OrderBy != "" {
			call = call.OrderBy(opts.OrderBy)
		}
		if opts.PageSize > 0 {
			call = call.PageSize(opts.PageSize)
		}
		if opts.Spaces != "" {
			call = call.Spaces(opts.Spaces)
		}
		if opts.Corpora != "" {
			call = call.Corpora(opts.Corpora)
		}
		if opts.DriveID != "" {
			call = call.DriveId(opts.DriveID)
		}
		if opts.SupportsAllDrives {
			call = call.SupportsAllDrives(true)
		}
		if opts.IncludeItemsFromAllDrives {
			call = call.IncludeItemsFromAllDrives(true)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := execute(ctx, c, "files.list", func() (*drive.FileList, error) {
			return call.Do()
		})
		if err != nil {
			return nil, err
		}

		for _, f := range resp.Files {
			files = append(files, convertToFileMeta(f))
		}
		incomplete = resp.IncompleteSearch

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if incomplete {
		c.logger.Warn("not all files in the corpora were searched, the result may be incomplete",
			logging.Operation("files.list"),
			logging.DriveID(c.driveID))
	}

	return files, nil
}

// SpreadsheetMetadata returns titles, ids and parent folder ids of all
// spreadsheets, optionally narrowed by a caller query which is ANDed
// with the spreadsheet MIME type predicate. An active shared-drive
// scope is threaded into the request.
func (c *Client) SpreadsheetMetadata(ctx context.Context, query string) ([]*FileMeta, error) {
	mimeQuery := "mimeType='" + SpreadsheetMimeType + "'"
	if query != "" {
		mimeQuery = query + " and " + mimeQuery
	}

	opts := &ListOptions{
		Query:  mimeQuery,
		Fields: "files(id, name, parents)",
	}
	if c.sharedDriveEnabled() {
		opts.Corpora = "drive"
		opts.DriveID = c.driveID
		opts.SupportsAllDrives = true
		opts.IncludeItemsFromAllDrives = true
	}

	return c.List(ctx, opts)
}

// withListPageFields keeps the continuation token and incomplete-search
// flag in a caller-supplied field mask. Without the token in the mask
// pagination would silently stop after the first page.
func withListPageFields(fields string) string {
	if strings.Contains(fields, "nextPageToken") {
		return fields
	}
	return "nextPageToken, incompleteSearch, " + fields
}
