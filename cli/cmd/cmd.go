package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	streamsKey      struct{}
	contextFilesKey struct{}

	streams struct {
		in  io.Reader
		out io.Writer
	}

	// contextFiles lists the unique context files in command-line order.
	// Standard input, when requested, is always decoded last.
	contextFiles struct {
		paths    []string
		hasStdin bool
	}
)

// WithStreams returns a new context.Context whose commands read standard
// input from in and write results to out. A nil stream keeps the process
// default.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(streamsKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithContextFiles returns a new context.Context carrying the context files
// whose decoded contents are bound to "$".
//
// Paths are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin source placed
// last, so values read from stdin override those read from files.
func WithContextFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, contextFilesKey{}, uniqueSources(sources))
}

func contextFilesFrom(ctx context.Context) contextFiles {
	f, _ := ctx.Value(contextFilesKey{}).(contextFiles)

	return f
}

func uniqueSources(sources []string) contextFiles {
	var files contextFiles

	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := fileKey{}, false
	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, stdinOK = makeFileKey(info)
	}

	for _, src := range sources {
		if src == stdinSource {
			files.hasStdin = true

			continue
		}

		path, key, ok := resolveFile(src)
		if !ok {
			// Let the decoder report the failure with the path attached.
			files.paths = append(files.paths, src)

			continue
		}

		if stdinOK && key == stdinKey {
			files.hasStdin = true

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		files.paths = append(files.paths, path)
	}

	return files
}

// resolveFile returns the symlink-free absolute path of path and its identity.
func resolveFile(path string) (string, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fileKey{}, false
	}

	key, ok := makeFileKey(info)

	return resolved, key, ok
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
