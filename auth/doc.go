// Package auth provides OAuth2 client construction for the drive
// wrapper.
//
// It implements the manual authorization flow: direct the user to
// AuthCodeURL, exchange the pasted code with SaveToken, and build
// authenticated services with NewServices on subsequent runs. Tokens
// are cached as JSON under the user cache directory and refreshed
// automatically.
package auth
