// Package record provides sealed constant tables. A Record is built once
// from a property bag plus a label, rejects reads of unknown keys and
// rejects every write.
package record
