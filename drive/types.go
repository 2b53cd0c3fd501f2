package drive

import (
	"time"

	drive "google.golang.org/api/drive/v3"
)

// Permission roles accepted by CreatePermission.
const (
	RoleOrganizer = "organizer"
	RoleOwner     = "owner"
	RoleWriter    = "writer"
	RoleCommenter = "commenter"
	RoleReader    = "reader"
)

// Grantee types accepted by CreatePermission.
const (
	TypeUser   = "user"
	TypeGroup  = "group"
	TypeDomain = "domain"
	TypeAnyone = "anyone"
)

// PermissionRoles lists every role CreatePermission accepts.
var PermissionRoles = []string{RoleOrganizer, RoleOwner, RoleWriter, RoleCommenter, RoleReader}

// GranteeTypes lists every grantee type CreatePermission accepts.
var GranteeTypes = []string{TypeUser, TypeGroup, TypeDomain, TypeAnyone}

// FileMeta is an immutable metadata snapshot of a Drive file. Fields
// outside the requested field mask are left at their zero value. A file
// may have zero or more parent folders.
type FileMeta struct {
	ID           string
	Name         string
	MimeType     string
	Parents      []string
	ModifiedTime time.Time
}

// Permission represents an access grant on a Drive file. Permissions
// are owned by the remote API; this wrapper never persists them.
type Permission struct {
	ID                 string
	Type               string
	Role               string
	EmailAddress       string
	Domain             string
	DisplayName        string
	AllowFileDiscovery bool
	ExpirationTime     *time.Time
	Deleted            bool
}

// ListOptions contains options for listing files. Shared-drive scoping
// fields are normally filled in by SpreadsheetMetadata; direct List
// callers may set them explicitly.
type ListOptions struct {
	// Query filters results using the Drive query language,
	// e.g. "name contains 'budget'".
	Query string

	// Fields is the field mask for the returned metadata. The
	// continuation token is kept in the mask automatically so that
	// pagination keeps working with a narrow mask.
	Fields string

	// OrderBy specifies the sort order, e.g. "folder,modifiedTime desc".
	OrderBy string

	// PageSize is the number of results per page. Zero keeps the API
	// default. The full result set is aggregated regardless.
	PageSize int64

	// Spaces is a comma-separated list of spaces to query.
	Spaces string

	// Corpora selects the corpus to query ("user", "drive", ...).
	Corpora string

	// DriveID restricts results to one shared drive. Requires Corpora
	// "drive".
	DriveID string

	// SupportsAllDrives signals shared-drive support to the API.
	SupportsAllDrives bool

	// IncludeItemsFromAllDrives includes shared-drive items in results.
	IncludeItemsFromAllDrives bool
}

// PermissionOptions contains the optional fields of CreatePermission.
// Recognized fields are validated and placed in the request body; the
// remaining fields are forwarded as query parameters verbatim.
type PermissionOptions struct {
	// EmailAddress is the user or group the permission refers to.
	// Mutually exclusive with Domain.
	EmailAddress string

	// Domain is the domain the permission refers to. Mutually exclusive
	// with EmailAddress.
	Domain string

	// AllowFileDiscovery controls whether the file can be discovered
	// through search. Only applicable to domain and anyone grants.
	AllowFileDiscovery *bool

	// ExpirationTime is when the permission expires. Only allowed on
	// user and group grants, must be in the future and at most a year
	// ahead.
	ExpirationTime *time.Time

	// EmailMessage is a plain text message included in the notification
	// email.
	EmailMessage string

	// SendNotificationEmail controls the notification email. The API
	// defaults to true for users and groups and forbids disabling it
	// for ownership transfers.
	SendNotificationEmail *bool

	// TransferOwnership acknowledges the side effect of granting the
	// owner role and downgrading the current owner to writer.
	TransferOwnership bool

	// UseDomainAdminAccess issues the request as a domain administrator.
	UseDomainAdminAccess bool

	// SupportsAllDrives signals shared-drive support. When unset it is
	// implied by an active shared-drive scope.
	SupportsAllDrives *bool
}

// ListPermissionsOptions contains options for ListPermissions.
type ListPermissionsOptions struct {
	// PageSize is the number of permissions per page. Zero keeps the
	// API default. The full result set is aggregated regardless.
	PageSize int64

	// Fields is the field mask. Defaults to "*" because the API default
	// omits most permission fields.
	Fields string

	// UseDomainAdminAccess issues the request as a domain administrator.
	UseDomainAdminAccess bool

	// SupportsAllDrives signals shared-drive support. When unset it is
	// implied by an active shared-drive scope.
	SupportsAllDrives *bool
}

// DeletePermissionOptions contains options for DeletePermission.
type DeletePermissionOptions struct {
	// UseDomainAdminAccess issues the request as a domain administrator.
	UseDomainAdminAccess bool

	// SupportsAllDrives signals shared-drive support. When unset it is
	// implied by an active shared-drive scope.
	SupportsAllDrives *bool
}

// convertToFileMeta converts a Drive API File to our FileMeta type.
func convertToFileMeta(f *drive.File) *FileMeta {
	meta := &FileMeta{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Parents:  f.Parents,
	}

	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			meta.ModifiedTime = t
		}
	}

	return meta
}

// convertToPermission converts a Drive API Permission to our Permission
// type.
func convertToPermission(p *drive.Permission) *Permission {
	perm := &Permission{
		ID:                 p.Id,
		Type:               p.Type,
		Role:               p.Role,
		EmailAddress:       p.EmailAddress,
		Domain:             p.Domain,
		DisplayName:        p.DisplayName,
		AllowFileDiscovery: p.AllowFileDiscovery,
		Deleted:            p.Deleted,
	}

	if p.ExpirationTime != "" {
		if t, err := time.Parse(time.RFC3339, p.ExpirationTime); err == nil {
			perm.ExpirationTime = &t
		}
	}

	return perm
}
