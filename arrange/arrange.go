// Package arrange tidies a directory by moving each file into a sub directory
// named after its file type, such as pdf_ or jpg_.
package arrange

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/utkarsh5026/boondh/fsutil"
)

const (
	// DefaultSuffix marks the sub directories an Organizer manages.
	DefaultSuffix = "_"

	// UnknownType is the file type of names without an extension.
	UnknownType = "unk"
)

// FileType returns the extension of name without the dot. Names without an
// extension, including dotfiles such as .gitignore, are UnknownType.
func FileType(name string) string {
	base := strings.TrimLeft(filepath.Base(name), ".")
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		return UnknownType
	}
	return ext
}

// Organizer sorts the files of a directory into type sub directories.
type Organizer struct {
	suffix   string
	logger   *zap.Logger
	progress io.Writer
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithSuffix changes the suffix that marks managed sub directories.
func WithSuffix(suffix string) Option {
	return func(o *Organizer) {
		if suffix != "" {
			o.suffix = suffix
		}
	}
}

// WithLogger sets the logger. Moves are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Organizer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress shows a progress bar on w while files are scanned and moved.
func WithProgress(w io.Writer) Option {
	return func(o *Organizer) {
		o.progress = w
	}
}

// New returns an Organizer using DefaultSuffix, no logging and no progress bar.
func New(opts ...Option) *Organizer {
	o := &Organizer{
		suffix: DefaultSuffix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// TypeSubDirs maps file types to the managed sub directories that already
// exist in dir.
func (o *Organizer) TypeSubDirs(dir string) (map[string]string, error) {
	entries, err := o.readDir(dir)
	if err != nil {
		return nil, err
	}

	managed := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return e.IsDir() && strings.HasSuffix(e.Name(), o.suffix) && len(e.Name()) > len(o.suffix)
	})
	return lo.Associate(managed, func(e os.DirEntry) (string, string) {
		return strings.TrimSuffix(e.Name(), o.suffix), filepath.Join(dir, e.Name())
	}), nil
}

// CreateTypeSubDirs creates a managed sub directory for every file type found
// among the files directly inside dir, and returns all managed sub
// directories.
func (o *Organizer) CreateTypeSubDirs(dir string) (map[string]string, error) {
	files, err := o.files(dir)
	if err != nil {
		return nil, err
	}
	subDirs, err := o.TypeSubDirs(dir)
	if err != nil {
		return nil, err
	}

	types := mapset.NewThreadUnsafeSet[string]()
	for _, name := range files {
		types.Add(FileType(name))
	}

	created := 0
	for _, fileType := range sorted(types) {
		if _, ok := subDirs[fileType]; ok {
			continue
		}
		path := filepath.Join(dir, fileType+o.suffix)
		if err := os.Mkdir(path, 0o755); err != nil {
			return nil, fmt.Errorf("create type dir: %w", err)
		}
		subDirs[fileType] = path
		created++
	}

	o.logger.Info("type dirs ready",
		zap.String("dir", dir),
		zap.Int("created", created),
		zap.Int("total", len(subDirs)),
	)
	return subDirs, nil
}

// MoveFilesToTypeSubDirs moves every file directly inside dir into the
// managed sub directory for its type, creating sub directories as needed.
// Running it again moves nothing.
func (o *Organizer) MoveFilesToTypeSubDirs(dir string) (int, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return 0, err
	}
	subDirs, err := o.CreateTypeSubDirs(abs)
	if err != nil {
		return 0, err
	}
	files, err := o.files(abs)
	if err != nil {
		return 0, err
	}

	o.logger.Info("working on", zap.String("dir", abs), zap.Int("files", len(files)))
	bar := o.bar(len(files), "moving files")
	defer bar.Finish()

	moved := 0
	for _, name := range files {
		_ = bar.Add(1)

		dest, ok := subDirs[FileType(name)]
		if !ok {
			continue
		}
		src := filepath.Join(abs, name)
		dst := filepath.Join(dest, name)
		if err := os.Rename(src, dst); err != nil {
			return moved, fmt.Errorf("move %s: %w", name, err)
		}
		o.logger.Debug("moved", zap.String("from", src), zap.String("to", dst))
		moved++
	}
	return moved, nil
}

// ListEmptySubDirs returns the paths of the empty directories directly inside
// dir.
func (o *Organizer) ListEmptySubDirs(dir string) ([]string, error) {
	entries, err := o.readDir(dir)
	if err != nil {
		return nil, err
	}

	var empty []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		children, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			empty = append(empty, path)
		}
	}
	return empty, nil
}

// RemoveEmptySubDirs removes the empty directories directly inside dir and
// returns the removed paths.
func (o *Organizer) RemoveEmptySubDirs(dir string) ([]string, error) {
	empty, err := o.ListEmptySubDirs(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(empty))
	for _, path := range empty {
		if err := os.Remove(path); err != nil {
			return removed, err
		}
		o.logger.Info("deleted", zap.String("dir", path))
		removed = append(removed, path)
	}
	return removed, nil
}

func (o *Organizer) readDir(dir string) ([]os.DirEntry, error) {
	if err := fsutil.AssertDirExists(dir); err != nil {
		return nil, err
	}
	return os.ReadDir(dir)
}

// files returns the names of the regular files directly inside dir.
func (o *Organizer) files(dir string) ([]string, error) {
	entries, err := o.readDir(dir)
	if err != nil {
		return nil, err
	}
	regular := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return e.Type().IsRegular()
	})
	return lo.Map(regular, func(e os.DirEntry, _ int) string {
		return e.Name()
	}), nil
}

func (o *Organizer) bar(total int, desc string) *progressbar.ProgressBar {
	if o.progress == nil {
		return progressbar.DefaultSilent(int64(total), desc)
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(o.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionClearOnFinish(),
	)
}

func sorted(set mapset.Set[string]) []string {
	items := set.ToSlice()
	slices.Sort(items)
	return items
}
