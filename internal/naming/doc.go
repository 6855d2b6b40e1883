// Package naming restores original filenames safely: it sanitizes names
// taken from the case report and resolves collisions in a destination
// directory by appending a numeric suffix before the extension.
package naming
