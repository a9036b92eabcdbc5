// Package build runs one complete site build: stage the source tree, run the
// feature pipeline over the staged tree and report the outcome. The CLI's gen
// command and the watch loop both route through Service.
package build
