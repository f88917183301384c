// Package file loads the run configuration from a TOML file.
//
// Values are layered: built-in defaults, then the file, then environment
// variables. Secrets such as the GitHub token and the ingest API key are
// normally supplied through the environment (REPOSCOUT_GITHUB_TOKEN or
// GITHUB_TOKEN, REPOSCOUT_INGEST_API_KEY) rather than written to disk.
package file
