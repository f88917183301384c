// Package file persists the records produced by a run to a JSON file.
package file
