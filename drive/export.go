package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/sheetkit/sheetdrive/internal/logging"
)

// MaxExportSize is the size cap the API enforces on exported content.
// Oversized documents fail at the provider, not locally.
const MaxExportSize = 10 << 20

// downloadChunkSize is the buffer size of the export download loop.
// Progress is logged once per full chunk.
const downloadChunkSize = 1 << 20

// Format pairs a MIME type with a file extension, identifying the
// target representation of a document export.
type Format struct {
	MimeType  string
	Extension string
}

// Export formats supported by the Drive API for spreadsheets.
var (
	CSV  = Format{MimeType: "text/csv", Extension: ".csv"}
	TSV  = Format{MimeType: "text/tab-separated-values", Extension: ".tsv"}
	PDF  = Format{MimeType: "application/pdf", Extension: ".pdf"}
	XLSX = Format{MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Extension: ".xlsx"}
	ODS  = Format{MimeType: "application/x-vnd.oasis.opendocument.spreadsheet", Extension: ".ods"}
	HTML = Format{MimeType: "application/zip", Extension: ".zip"} // zipped HTML
)

// ExportOptions contains options for exports.
type ExportOptions struct {
	// Dir is the directory the file is written to. Defaults to the
	// current working directory.
	Dir string

	// Filename is the output name without extension. Defaults to the
	// spreadsheet id. Multi-worksheet CSV/TSV exports append the
	// worksheet index to this base name.
	Filename string
}

// ErrNoSheetsService is returned by exports that need worksheet
// structure when the Client was built without WithSheetsService.
var ErrNoSheetsService = errors.New("no sheets service configured, use WithSheetsService")

// ExportSpreadsheet downloads a whole spreadsheet in the given format.
//
// CSV and TSV can only carry one worksheet per request, so for a
// multi-worksheet document one export request is issued per worksheet
// and each file gets the worksheet index appended to its base name. No
// combined file is produced in that case. All other formats export the
// document in a single request.
func (c *Client) ExportSpreadsheet(ctx context.Context, spreadsheetID string, format Format, opts *ExportOptions) error {
	if opts == nil {
		opts = &ExportOptions{}
	}

	if format == CSV || format == TSV {
		worksheets, err := c.worksheets(ctx, spreadsheetID)
		if err != nil {
			return err
		}
		if len(worksheets) > 1 {
			base := opts.Filename
			if base == "" {
				base = spreadsheetID
			}
			for _, ws := range worksheets {
				wsOpts := &ExportOptions{
					Dir:      opts.Dir,
					Filename: base + strconv.FormatInt(ws.Index, 10),
				}
				if err := c.exportWorksheet(ctx, spreadsheetID, ws, format, wsOpts); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return c.download(ctx, spreadsheetID, format, opts)
}

// ExportWorksheet downloads a single worksheet of a spreadsheet in the
// given format. The export endpoint always serves the frontmost sheet,
// so the worksheet is temporarily moved to the front and its original
// position is restored afterwards, also when the export fails.
func (c *Client) ExportWorksheet(ctx context.Context, spreadsheetID string, sheetIndex int64, format Format, opts *ExportOptions) error {
	if opts == nil {
		opts = &ExportOptions{}
	}

	worksheets, err := c.worksheets(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	for _, ws := range worksheets {
		if ws.Index == sheetIndex {
			return c.exportWorksheet(ctx, spreadsheetID, ws, format, opts)
		}
	}
	return invalidArgf("spreadsheet %s has no worksheet at index %d", spreadsheetID, sheetIndex)
}

// exportWorksheet exports one worksheet, shuffling it to the front of
// the document for the duration of the export when necessary.
func (c *Client) exportWorksheet(ctx context.Context, spreadsheetID string, ws *sheets.SheetProperties, format Format, opts *ExportOptions) (err error) {
	if ws.Index != 0 {
		if err := c.moveWorksheet(ctx, spreadsheetID, ws.SheetId, 0); err != nil {
			return fmt.Errorf("failed to move worksheet %d to front: %w", ws.Index, err)
		}
		defer func() {
			// Restore runs on the failure path too. Moving a sheet to a
			// greater index: the target is interpreted as if the sheet
			// were removed first, hence the +1.
			restoreErr := c.moveWorksheet(ctx, spreadsheetID, ws.SheetId, ws.Index+1)
			if restoreErr != nil {
				restoreErr = fmt.Errorf("failed to restore worksheet position %d: %w", ws.Index, restoreErr)
				if err == nil {
					err = restoreErr
				} else {
					c.logger.Warn("worksheet position not restored",
						logging.FileID(spreadsheetID),
						logging.Err(restoreErr))
				}
			}
		}()
	}

	return c.download(ctx, spreadsheetID, format, opts)
}

// moveWorksheet moves a worksheet to the given position.
func (c *Client) moveWorksheet(ctx context.Context, spreadsheetID string, sheetID, index int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					Index:   index,
					// Index 0 is the zero value and would be dropped
					// from the JSON body otherwise.
					ForceSendFields: []string{"Index"},
				},
				Fields: "index",
			},
		}},
	}

	call := c.sheetsSvc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx)
	_, err := execute(ctx, c, "spreadsheets.batchUpdate", func() (*sheets.BatchUpdateSpreadsheetResponse, error) {
		return call.Do()
	})
	return err
}

// worksheets returns the sheet properties of a spreadsheet in document
// order.
func (c *Client) worksheets(ctx context.Context, spreadsheetID string) ([]*sheets.SheetProperties, error) {
	if c.sheetsSvc == nil {
		return nil, ErrNoSheetsService
	}

	call := c.sheetsSvc.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Fields("sheets.properties")
	resp, err := execute(ctx, c, "spreadsheets.get", func() (*sheets.Spreadsheet, error) {
		return call.Do()
	})
	if err != nil {
		return nil, err
	}

	props := make([]*sheets.SheetProperties, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		props = append(props, s.Properties)
	}
	return props, nil
}

// download requests the export and streams the response body to a local
// file in chunks, logging progress after each chunk. The file handle is
// closed on every exit path.
func (c *Client) download(ctx context.Context, spreadsheetID string, format Format, opts *ExportOptions) (err error) {
	filename := opts.Filename
	if filename == "" {
		filename = spreadsheetID
	}
	target := filepath.Join(opts.Dir, filename+format.Extension)

	call := c.service.Files.Export(spreadsheetID, format.MimeType).Context(ctx)
	resp, err := execute(ctx, c, "files.export", func() (*http.Response, error) {
		return call.Download()
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var written int64
	total := resp.ContentLength
	buf := make([]byte, downloadChunkSize)

	for {
		n, rerr := io.ReadFull(resp.Body, buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("failed to write %s: %w", target, werr)
			}
			written += int64(n)
			if total > 0 {
				c.logger.Info("download progress",
					logging.FileID(spreadsheetID),
					logging.ProgressPct(int(written*100/total)))
			}
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("download of %s failed: %w", target, rerr)
		}
	}

	c.metrics.RecordExportBytes(ctx, format.Extension, written)
	c.logger.Info("download finished",
		logging.FileID(spreadsheetID),
		logging.Path(target))

	return nil
}
