package drive

import (
	"context"
	"regexp"
	"slices"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/sheetkit/sheetdrive/internal/logging"
)

var emailPattern = regexp.MustCompile("\"?([-a-zA-Z0-9.`?{}]+@[-a-zA-Z0-9.]+\\.\\w+)\"?")

// CreatePermission creates a permission for a file or shared drive.
//
// The role and grantee type must come from PermissionRoles and
// GranteeTypes. A user or group grant requires EmailAddress, a domain
// grant requires Domain, and the two are mutually exclusive. Validation
// failures are reported as ErrInvalidArgument before any remote call is
// issued.
//
// Under an active shared-drive scope shared-drive support is signalled
// automatically unless opts says otherwise.
func (c *Client) CreatePermission(ctx context.Context, fileID, role, granteeType string, opts *PermissionOptions) (*Permission, error) {
	if opts == nil {
		opts = &PermissionOptions{}
	}

	if !slices.Contains(PermissionRoles, role) {
		return nil, invalidArgf("permission role must be one of %v, got %q", PermissionRoles, role)
	}
	if !slices.Contains(GranteeTypes, granteeType) {
		return nil, invalidArgf("grantee type must be one of %v, got %q", GranteeTypes, granteeType)
	}
	if opts.EmailAddress != "" && opts.Domain != "" {
		return nil, invalidArgf("a permission can only use an email address or a domain, not both")
	}
	if (granteeType == TypeUser || granteeType == TypeGroup) && opts.EmailAddress == "" {
		return nil, invalidArgf("a %s permission requires an email address", granteeType)
	}
	if opts.EmailAddress != "" && !emailPattern.MatchString(opts.EmailAddress) {
		return nil, invalidArgf("the provided e-mail address doesn't have a valid format: %q", opts.EmailAddress)
	}

	body := &drive.Permission{
		Kind: "drive#permission",
		Type: granteeType,
		Role: role,
	}
	if opts.EmailAddress != "" {
		body.EmailAddress = opts.EmailAddress
	} else if opts.Domain != "" {
		body.Domain = opts.Domain
	}
	if opts.AllowFileDiscovery != nil {
		body.AllowFileDiscovery = *opts.AllowFileDiscovery
		if !*opts.AllowFileDiscovery {
			// An explicit false must survive JSON marshalling.
			body.ForceSendFields = append(body.ForceSendFields, "AllowFileDiscovery")
		}
	}
	if opts.ExpirationTime != nil {
		body.ExpirationTime = opts.ExpirationTime.Format(time.RFC3339)
	}

	call := c.service.Permissions.Create(fileID, body).Context(ctx)
	if opts.EmailMessage != "" {
		call = call.EmailMessage(opts.EmailMessage)
	}
	if opts.SendNotificationEmail != nil {
		call = call.SendNotificationEmail(*opts.SendNotificationEmail)
	}
	if opts.TransferOwnership {
		call = call.TransferOwnership(true)
	}
	if opts.UseDomainAdminAccess {
		call = call.UseDomainAdminAccess(true)
	}
	if c.supportsAllDrives(opts.SupportsAllDrives) {
		call = call.SupportsAllDrives(true)
	}

	created, err := execute(ctx, c, "permissions.create", func() (*drive.Permission, error) {
		return call.Do()
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("permission created",
		logging.Operation("permissions.create"),
		logging.FileID(fileID),
		logging.PermissionID(created.Id),
		logging.GranteeHash(opts.EmailAddress))

	return convertToPermission(created), nil
}

// ListPermissions returns all permissions of a file across all result
// pages. The field mask defaults to "*" because the API default returns
// only id, type and role.
func (c *Client) ListPermissions(ctx context.Context, fileID string, opts *ListPermissionsOptions) ([]*Permission, error) {
	if opts == nil {
		opts = &ListPermissionsOptions{}
	}

	fields := opts.Fields
	if fields == "" {
		fields = "*"
	}

	var permissions []*Permission
	pageToken := ""

	for {
		call := c.service.Permissions.List(fileID).
			Context(ctx).
			Fields(googleapi.Field(fields))
		if opts.PageSize > 0 {
			call = call.PageSize(opts.PageSize)
		}
		if opts.UseDomainAdminAccess {
			call = call.UseDomainAdminAccess(true)
		}
		if c.supportsAllDrives(opts.SupportsAllDrives) {
			call = call.SupportsAllDrives(true)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := execute(ctx, c, "permissions.list", func() (*drive.PermissionList, error) {
			return call.Do()
		})
		if err != nil {
			return nil, err
		}

		for _, p := range resp.Permissions {
			permissions = append(permissions, convertToPermission(p))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return permissions, nil
}

// DeletePermission deletes a permission. When the API rejects the
// deletion because the permission belongs to the file owner the error
// is reported as ErrCannotRemoveOwner; any other failure propagates
// unchanged.
func (c *Client) DeletePermission(ctx context.Context, fileID, permissionID string, opts *DeletePermissionOptions) error {
	if opts == nil {
		opts = &DeletePermissionOptions{}
	}

	call := c.service.Permissions.Delete(fileID, permissionID).Context(ctx)
	if opts.UseDomainAdminAccess {
		call = call.UseDomainAdminAccess(true)
	}
	if c.supportsAllDrives(opts.SupportsAllDrives) {
		call = call.SupportsAllDrives(true)
	}

	err := executeVoid(ctx, c, "permissions.delete", func() error {
		return call.Do()
	})
	if err != nil {
		c.logger.Error("permission delete failed",
			logging.Operation("permissions.delete"),
			logging.FileID(fileID),
			logging.PermissionID(permissionID),
			logging.Err(err))
		if isOwnerRemoval(err) {
			return ErrCannotRemoveOwner
		}
		return err
	}

	return nil
}

// supportsAllDrives resolves the effective shared-drive support flag:
// an explicit caller choice wins, otherwise it follows the scope.
func (c *Client) supportsAllDrives(explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	return c.sharedDriveEnabled()
}
