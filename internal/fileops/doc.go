// Package fileops performs the sandboxed file operations behind the file-op
// endpoint: copy, move (and its rename alias), delete, and createDir.
//
// Every source and target is resolved through the sandbox before any
// filesystem call. Operations run at most once with no rollback: a copy is
// not verified afterwards and a move is a single rename, so moving across
// filesystems fails with a cross-device error instead of falling back to
// copy and delete.
package fileops
