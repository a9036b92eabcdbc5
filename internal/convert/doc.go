// Package convert turns marked-up documents in the staged tree into HTML by
// running an external converter once per document.
//
// Each document is one Task: its text gets the header prepended and the
// footer appended (with {{date}} resolved from the document's #+DATE
// directive), then the converter is invoked as `<binary> <file>`. Tasks run on
// a bounded worker pool; a failing document never stops the others.
package convert
