// Package security holds the browser-facing protections of the catalog UI:
// CSRF tokens on every form, response security headers and cookie sessions
// used for flash messages.
package security
