// Package cmd implements the drivefetch command line interface.
//
// Commands:
//   - auth: run the OAuth2 authentication flow
//   - list: list the files in a Drive folder
//   - get: download a file
//   - info: show a file's metadata
//   - version: print version information
package cmd
