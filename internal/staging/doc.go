// Package staging prepares the output tree for a build: the previous output
// is removed and the source tree is copied over it, so every build starts from
// a deep copy of the source directory.
package staging
