// Package memory provides in-memory sinks used for dry runs and tests.
//
// [SheetStore] records spreadsheet writes instead of sending them and can
// delegate reads to a real store. [IndexStore] keeps ingested records keyed
// by commit SHA.
package memory
