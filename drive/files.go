package drive

import (
	"context"
	"fmt"
	"time"

	drive "google.golang.org/api/drive/v3"
)

// GetUpdateTime returns the time the file was last modified.
func (c *Client) GetUpdateTime(ctx context.Context, fileID string) (time.Time, error) {
	call := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("modifiedTime")
	if c.sharedDriveEnabled() {
		call = call.SupportsAllDrives(true)
	}

	f, err := execute(ctx, c, "files.get", func() (*drive.File, error) {
		return call.Do()
	})
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, f.ModifiedTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse modifiedTime %q: %w", f.ModifiedTime, err)
	}
	return t, nil
}

// Delete permanently deletes a file without moving it to the trash. If
// the id refers to a folder, all descendants owned by the user are
// deleted as well. On a shared drive the user must be an organizer on
// the parent.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	call := c.service.Files.Delete(fileID).Context(ctx)
	if c.sharedDriveEnabled() {
		call = call.SupportsAllDrives(true)
	}

	return executeVoid(ctx, c, "files.delete", func() error {
		return call.Do()
	})
}

// Move moves a file from one folder to another. The current parent is
// required because moving removes it.
func (c *Client) Move(ctx context.Context, fileID, oldFolderID, newFolderID string) error {
	call := c.service.Files.Update(fileID, &drive.File{}).
		Context(ctx).
		RemoveParents(oldFolderID).
		AddParents(newFolderID)
	if c.sharedDriveEnabled() {
		call = call.SupportsAllDrives(true)
	}

	_, err := execute(ctx, c, "files.update", func() (*drive.File, error) {
		return call.Do()
	})
	return err
}
