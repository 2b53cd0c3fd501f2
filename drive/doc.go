// Package drive wraps the file-management subset of the Google Drive v3
// API used by spreadsheet tooling.
//
// The wrapper covers:
//   - Listing file metadata with transparent multi-page aggregation
//   - Deleting and moving files
//   - Creating, listing and deleting sharing permissions
//   - Exporting documents to local files with chunked download progress
//
// Every remote call runs through a single retry funnel: failures that
// look like network timeouts are retried up to the configured budget
// and then reported as *RequestError, while all other API errors
// propagate unchanged. Permission parameters are validated locally
// before a request is issued and violations are reported as
// ErrInvalidArgument.
//
// By default requests address the user's personal drive; call
// EnableSharedDrive to address a shared drive, which also threads the
// required scoping parameters into list and permission requests.
//
// The Client expects a pre-built *drive.Service. Credential handling is
// deliberately out of scope; the auth package offers a convenience path
// for OAuth2 setup.
//
// Example usage:
//
//	svc, sheetsSvc, err := auth.NewServices(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := drive.New(svc, drive.WithSheetsService(sheetsSvc))
//
//	sheets, err := client.SpreadsheetMetadata(ctx, "name contains 'budget'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = client.ExportSpreadsheet(ctx, sheets[0].ID, drive.CSV, nil)
package drive
