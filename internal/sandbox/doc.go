// Package sandbox confines every user-supplied path to a fixed allow-list of
// root directories.
//
// Resolve is the only way a raw request string becomes a filesystem path in
// mediadesk: the result is absolute, cleaned of "." and ".." segments, and
// either equal to a configured root or strictly below one. The descendant
// check compares against root+separator so a sibling such as /media-evil
// never matches the root /media.
//
// Normalization is purely lexical; symbolic links inside a root are not
// followed or evaluated.
package sandbox
