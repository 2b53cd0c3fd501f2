package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheets "google.golang.org/api/sheets/v4"
)

// sheetMove records one worksheet reorder request.
type sheetMove struct {
	sheetID int64
	index   int64
}

// exportHandler stubs the Drive export endpoint and the Sheets
// endpoints the exporter needs.
type exportHandler struct {
	t *testing.T

	// worksheets served by spreadsheets.get, as {sheetId, index} pairs.
	worksheets []sheetMove

	// exportBody is the content served for every export request.
	exportBody []byte

	// failExport makes the export endpoint return a server error.
	failExport bool

	moves       []sheetMove
	exportCalls int
	mimeTypes   []string
}

func (h *exportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		require.NoError(h.t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(h.t, req.Requests, 1)
		props := req.Requests[0].UpdateSheetProperties.Properties
		h.moves = append(h.moves, sheetMove{sheetID: props.SheetId, index: props.Index})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))

	case strings.Contains(path, "/v4/spreadsheets/"):
		var sheetList []map[string]any
		for _, ws := range h.worksheets {
			sheetList = append(sheetList, map[string]any{
				"properties": map[string]any{"sheetId": ws.sheetID, "index": ws.index},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(h.t, json.NewEncoder(w).Encode(map[string]any{"sheets": sheetList}))

	case strings.HasSuffix(path, "/export"):
		h.exportCalls++
		h.mimeTypes = append(h.mimeTypes, r.URL.Query().Get("mimeType"))
		if h.failExport {
			apiError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Length", strconv.Itoa(len(h.exportBody)))
		_, _ = w.Write(h.exportBody)

	default:
		h.t.Errorf("unexpected request: %s %s", r.Method, path)
		apiError(w, http.StatusInternalServerError, "unexpected request")
	}
}

func TestExportSpreadsheetSingleWorksheetCSV(t *testing.T) {
	h := &exportHandler{
		t:          t,
		worksheets: []sheetMove{{sheetID: 10, index: 0}},
		exportBody: []byte("a,b\n1,2\n"),
	}
	c := newTestClient(t, h)
	dir := t.TempDir()

	err := c.ExportSpreadsheet(context.Background(), "sheet1", CSV, &ExportOptions{Dir: dir, Filename: "export"})
	require.NoError(t, err)

	// Exactly one file named <base><ext>, and no sheet was moved.
	data, err := os.ReadFile(filepath.Join(dir, "export.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
	assert.Equal(t, 1, h.exportCalls)
	assert.Empty(t, h.moves)
}

func TestExportSpreadsheetMultiWorksheetCSVFansOut(t *testing.T) {
	h := &exportHandler{
		t: t,
		worksheets: []sheetMove{
			{sheetID: 10, index: 0},
			{sheetID: 11, index: 1},
			{sheetID: 12, index: 2},
		},
		exportBody: []byte("a,b\n"),
	}
	c := newTestClient(t, h)
	dir := t.TempDir()

	err := c.ExportSpreadsheet(context.Background(), "sheet1", CSV, &ExportOptions{Dir: dir, Filename: "export"})
	require.NoError(t, err)

	// One export per worksheet, named <base><index><ext>.
	assert.Equal(t, 3, h.exportCalls)
	for i := 0; i < 3; i++ {
		_, err := os.Stat(filepath.Join(dir, "export"+strconv.Itoa(i)+".csv"))
		assert.NoError(t, err, "missing export%d.csv", i)
	}

	// Worksheet 0 needs no move; 1 and 2 are moved to the front and
	// restored (+1 because the index is interpreted after removal).
	assert.Equal(t, []sheetMove{
		{sheetID: 11, index: 0},
		{sheetID: 11, index: 2},
		{sheetID: 12, index: 0},
		{sheetID: 12, index: 3},
	}, h.moves)
}

func TestExportSpreadsheetXLSXSkipsWorksheetStructure(t *testing.T) {
	h := &exportHandler{t: t, exportBody: []byte("xlsx-bytes")}
	c := newTestClient(t, h)
	dir := t.TempDir()

	err := c.ExportSpreadsheet(context.Background(), "sheet1", XLSX, &ExportOptions{Dir: dir})
	require.NoError(t, err)

	// Non-CSV export goes out in a single request with the document id
	// as the default file name.
	assert.Equal(t, 1, h.exportCalls)
	assert.Equal(t, []string{XLSX.MimeType}, h.mimeTypes)
	_, err = os.Stat(filepath.Join(dir, "sheet1.xlsx"))
	assert.NoError(t, err)
}

func TestExportSpreadsheetCSVWithoutSheetsService(t *testing.T) {
	h := &exportHandler{t: t, exportBody: []byte("a\n")}
	c := newTestClient(t, h, WithSheetsService(nil))

	err := c.ExportSpreadsheet(context.Background(), "sheet1", CSV, nil)
	require.ErrorIs(t, err, ErrNoSheetsService)
}

func TestExportWorksheetRestoresPosition(t *testing.T) {
	h := &exportHandler{
		t: t,
		worksheets: []sheetMove{
			{sheetID: 10, index: 0},
			{sheetID: 11, index: 1},
		},
		exportBody: []byte("a,b\n"),
	}
	c := newTestClient(t, h)
	dir := t.TempDir()

	err := c.ExportWorksheet(context.Background(), "sheet1", 1, TSV, &ExportOptions{Dir: dir, Filename: "ws"})
	require.NoError(t, err)

	assert.Equal(t, []string{TSV.MimeType}, h.mimeTypes)
	_, err = os.Stat(filepath.Join(dir, "ws.tsv"))
	assert.NoError(t, err)

	// Moved to the front for the export, then restored.
	assert.Equal(t, []sheetMove{
		{sheetID: 11, index: 0},
		{sheetID: 11, index: 2},
	}, h.moves)
}

func TestExportWorksheetRestoresPositionOnFailure(t *testing.T) {
	h := &exportHandler{
		t: t,
		worksheets: []sheetMove{
			{sheetID: 10, index: 0},
			{sheetID: 11, index: 1},
		},
		failExport: true,
	}
	c := newTestClient(t, h)

	err := c.ExportWorksheet(context.Background(), "sheet1", 1, CSV, &ExportOptions{Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export failed")

	// The restore must run even though the export itself failed.
	assert.Equal(t, []sheetMove{
		{sheetID: 11, index: 0},
		{sheetID: 11, index: 2},
	}, h.moves)
}

func TestExportWorksheetFrontSheetNeedsNoMove(t *testing.T) {
	h := &exportHandler{
		t: t,
		worksheets: []sheetMove{
			{sheetID: 10, index: 0},
			{sheetID: 11, index: 1},
		},
		exportBody: []byte("a\n"),
	}
	c := newTestClient(t, h)

	err := c.ExportWorksheet(context.Background(), "sheet1", 0, CSV, &ExportOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, h.moves)
}

func TestExportWorksheetUnknownIndex(t *testing.T) {
	h := &exportHandler{
		t:          t,
		worksheets: []sheetMove{{sheetID: 10, index: 0}},
	}
	c := newTestClient(t, h)

	err := c.ExportWorksheet(context.Background(), "sheet1", 5, CSV, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDownloadLogsChunkProgress(t *testing.T) {
	// Three chunks: two full ones and a remainder.
	body := bytes.Repeat([]byte("x"), 2*downloadChunkSize+100)
	h := &exportHandler{
		t:          t,
		worksheets: []sheetMove{{sheetID: 10, index: 0}},
		exportBody: body,
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := newTestClient(t, h, WithLogger(logger))
	dir := t.TempDir()

	err := c.ExportSpreadsheet(context.Background(), "sheet1", CSV, &ExportOptions{Dir: dir, Filename: "big"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "big.csv"))
	require.NoError(t, err)
	assert.Len(t, data, len(body))

	logs := buf.String()
	assert.Equal(t, 3, strings.Count(logs, "download progress"))
	assert.Contains(t, logs, "progress_pct=100")
	assert.Contains(t, logs, "download finished")
}
