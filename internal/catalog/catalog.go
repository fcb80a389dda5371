package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediadesk/internal/services"
)

// Kind classifies a directory entry.
type Kind string

const (
	KindDirectory Kind = "directory"
	KindVideo     Kind = "video"
	KindSubtitle  Kind = "subtitle"
	KindOther     Kind = "other"
)

// Entry describes a single child of a listed directory.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	Modified time.Time
	Ext      string
	Kind     Kind
}

// Lister enumerates directories using the configured extension sets.
type Lister struct {
	video    map[string]struct{}
	subtitle map[string]struct{}
}

// New builds a lister. Extensions are matched case-insensitively and may be
// given with or without the leading dot.
func New(videoExts, subtitleExts []string) *Lister {
	return &Lister{
		video:    extensionSet(videoExts),
		subtitle: extensionSet(subtitleExts),
	}
}

// List returns the entries of dir in filesystem enumeration order. The first
// entry whose metadata cannot be read fails the whole listing.
func (l *Lister) List(dir string) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "catalog", "list", fmt.Sprintf("stat %s", dir), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrIO, "catalog", "list", fmt.Sprintf("%s is not a directory", dir), nil)
	}
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "catalog", "list", fmt.Sprintf("read %s", dir), err)
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		childInfo, err := child.Info()
		if err != nil {
			return nil, services.Wrap(services.ErrIO, "catalog", "list", fmt.Sprintf("stat %s", child.Name()), err)
		}
		entry := Entry{
			Name:     child.Name(),
			Path:     filepath.Join(dir, child.Name()),
			IsDir:    childInfo.IsDir(),
			Size:     childInfo.Size(),
			Modified: childInfo.ModTime().UTC(),
		}
		if !entry.IsDir {
			entry.Ext = Extension(entry.Name)
		}
		entry.Kind = l.Classify(entry.Name, entry.IsDir)
		entries = append(entries, entry)
	}
	return entries, nil
}

// Classify returns the kind for a name. Directories win over any extension.
func (l *Lister) Classify(name string, isDir bool) Kind {
	if isDir {
		return KindDirectory
	}
	ext := Extension(name)
	if _, ok := l.video[ext]; ok {
		return KindVideo
	}
	if _, ok := l.subtitle[ext]; ok {
		return KindSubtitle
	}
	return KindOther
}

// IsVideo reports whether path carries a recognized video extension.
func (l *Lister) IsVideo(path string) bool {
	_, ok := l.video[Extension(path)]
	return ok
}

// IsSubtitle reports whether path carries a recognized subtitle extension.
func (l *Lister) IsSubtitle(path string) bool {
	_, ok := l.subtitle[Extension(path)]
	return ok
}

// Extension returns the lowercased extension of name including the dot.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}
