package drive

import (
	"testing"
	"time"

	drive "google.golang.org/api/drive/v3"
)

func TestConvertToFileMeta(t *testing.T) {
	modifiedTime := "2023-01-02T15:30:00Z"

	driveFile := &drive.File{
		Id:           "file123",
		Name:         "budget",
		MimeType:     SpreadsheetMimeType,
		Parents:      []string{"parent1", "parent2"},
		ModifiedTime: modifiedTime,
	}

	meta := convertToFileMeta(driveFile)

	if meta.ID != "file123" {
		t.Errorf("expected ID file123, got %s", meta.ID)
	}
	if meta.Name != "budget" {
		t.Errorf("expected Name budget, got %s", meta.Name)
	}
	if meta.MimeType != SpreadsheetMimeType {
		t.Errorf("expected spreadsheet MIME type, got %s", meta.MimeType)
	}
	if len(meta.Parents) != 2 || meta.Parents[0] != "parent1" || meta.Parents[1] != "parent2" {
		t.Errorf("expected parents [parent1, parent2], got %v", meta.Parents)
	}

	expected, _ := time.Parse(time.RFC3339, modifiedTime)
	if !meta.ModifiedTime.Equal(expected) {
		t.Errorf("expected ModifiedTime %v, got %v", expected, meta.ModifiedTime)
	}
}

func TestConvertToFileMetaMinimal(t *testing.T) {
	meta := convertToFileMeta(&drive.File{Id: "file456", Name: "minimal"})

	if meta.ID != "file456" {
		t.Errorf("expected ID file456, got %s", meta.ID)
	}
	if len(meta.Parents) != 0 {
		t.Errorf("expected no parents, got %v", meta.Parents)
	}
	if !meta.ModifiedTime.IsZero() {
		t.Errorf("expected zero ModifiedTime, got %v", meta.ModifiedTime)
	}
}

func TestConvertToPermission(t *testing.T) {
	expiry := "2026-09-01T12:00:00Z"

	drivePerm := &drive.Permission{
		Id:                 "perm123",
		Type:               "user",
		Role:               "writer",
		EmailAddress:       "writer@example.com",
		DisplayName:        "Writer User",
		AllowFileDiscovery: true,
		ExpirationTime:     expiry,
		Deleted:            true,
	}

	perm := convertToPermission(drivePerm)

	if perm.ID != "perm123" {
		t.Errorf("expected ID perm123, got %s", perm.ID)
	}
	if perm.Type != "user" {
		t.Errorf("expected Type user, got %s", perm.Type)
	}
	if perm.Role != "writer" {
		t.Errorf("expected Role writer, got %s", perm.Role)
	}
	if perm.EmailAddress != "writer@example.com" {
		t.Errorf("expected EmailAddress writer@example.com, got %s", perm.EmailAddress)
	}
	if perm.DisplayName != "Writer User" {
		t.Errorf("expected DisplayName 'Writer User', got %s", perm.DisplayName)
	}
	if !perm.AllowFileDiscovery {
		t.Error("expected AllowFileDiscovery to be true")
	}
	if !perm.Deleted {
		t.Error("expected Deleted to be true")
	}

	if perm.ExpirationTime == nil {
		t.Fatal("expected ExpirationTime to be set")
	}
	expected, _ := time.Parse(time.RFC3339, expiry)
	if !perm.ExpirationTime.Equal(expected) {
		t.Errorf("expected ExpirationTime %v, got %v", expected, *perm.ExpirationTime)
	}
}

func TestConvertToPermissionMinimal(t *testing.T) {
	perm := convertToPermission(&drive.Permission{Id: "p", Type: "anyone", Role: "reader"})

	if perm.ExpirationTime != nil {
		t.Errorf("expected nil ExpirationTime, got %v", *perm.ExpirationTime)
	}
	if perm.Domain != "" || perm.EmailAddress != "" {
		t.Error("expected empty grantee fields")
	}
}

func TestEmailPattern(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user-name@example-host.com",
	}
	for _, email := range valid {
		if !emailPattern.MatchString(email) {
			t.Errorf("expected %q to be accepted", email)
		}
	}

	invalid := []string{
		"not-an-email",
		"missing-domain@",
		"@missing-local.com",
	}
	for _, email := range invalid {
		if emailPattern.MatchString(email) {
			t.Errorf("expected %q to be rejected", email)
		}
	}
}
