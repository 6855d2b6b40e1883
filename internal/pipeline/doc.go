// Package pipeline orchestrates a run: it builds the task list from the
// case report (or a directory walk in cleanup mode), classifies each file
// sequentially, plans the disposition, performs the rename/move/delete,
// and reports aggregate stats. Files are processed one at a time in a
// stable order; a filesystem error on one file never aborts the run.
package pipeline
