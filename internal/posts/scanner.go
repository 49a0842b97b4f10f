package posts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RawFile is one content file as read from disk, before parsing.
type RawFile struct {
	Slug string
	Path string
	Text string
}

// Scanner lists the content files of a single directory.
type Scanner struct {
	Dir string
	Ext string
}

// NewScanner returns a Scanner for files ending in ext directly inside dir.
func NewScanner(dir, ext string) *Scanner {
	return &Scanner{Dir: dir, Ext: ext}
}

// Scan reads every matching regular file in the directory. Symlinks count
// when they resolve to a regular file; directories, dangling links, pipes and
// devices are skipped. The result follows directory enumeration order.
func (s *Scanner) Scan() ([]RawFile, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, &FilesystemError{Op: "read dir", Path: s.Dir, Err: err}
	}

	var files []RawFile
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, s.Ext) {
			continue
		}
		slug := strings.TrimSuffix(name, s.Ext)
		if slug == "" {
			continue
		}

		path := filepath.Join(s.Dir, name)
		regular, err := isRegular(entry, path)
		if err != nil {
			return nil, &FilesystemError{Op: "stat", Path: path, Err: err}
		}
		if !regular {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &FilesystemError{Op: "read file", Path: path, Err: err}
		}
		files = append(files, RawFile{Slug: slug, Path: path, Text: string(data)})
	}
	return files, nil
}

func isRegular(entry fs.DirEntry, path string) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular(), nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
