package drive

import (
	"errors"
	"net"
	"os"
	"strings"
)

// The Drive API reports some failure classes only through message text.
// All error-text matching lives in this file so that a change in
// provider wording needs exactly one update.

const ownerRemovalMessage = "The owner of a file cannot be removed."

// isTimeout reports whether err looks like a network timeout. Structured
// checks (net.Error, os.IsTimeout) are tried first; the text match
// catches timeouts that arrive wrapped in plain errors.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if os.IsTimeout(err) {
		return true
	}
	return strings.Contains(err.Error(), "timed out")
}

// isOwnerRemoval reports whether err is the API's rejection of an
// attempt to delete the owner's permission.
func isOwnerRemoval(err error) bool {
	return err != nil && strings.Contains(err.Error(), ownerRemovalMessage)
}
