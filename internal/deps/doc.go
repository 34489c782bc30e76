// Package deps reports whether the external binaries Mozaik wraps are
// installed, and which version each one is.
package deps
