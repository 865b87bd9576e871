package cmd

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/value"
)

// readInput returns the full contents of the file at path, or of standard
// input when path is "-".
func readInput(ctx context.Context, path string) ([]byte, error) {
	var r io.Reader

	if path == stdinSource {
		r = streamsFrom(ctx).in
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, lang.ErrReadInput.With(slog.String("file", path)).Wrap(err)
		}
		defer f.Close()

		r = f
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	buf, err := io.ReadAll(ra)
	if err != nil {
		return nil, lang.ErrReadInput.With(slog.String("file", path)).Wrap(err)
	}

	return buf, nil
}

// decodeDocument decodes a YAML or JSON document. An empty document decodes
// to nil.
func decodeDocument(buf []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}

	return signed(value.Normalize(doc)), nil
}

// loadContext decodes every context file attached to ctx, merges the
// results, then applies each key=value assignment in set.
//
// Objects are merged key by key with later files taking precedence; any other
// document replaces what came before it. Keys in set may use dots to address
// nested objects, which are created as needed. Each assigned value is decoded
// as a YAML scalar, falling back to the literal text.
func loadContext(ctx context.Context, set map[string]string) (any, error) {
	files := contextFilesFrom(ctx)

	paths := files.paths
	if files.hasStdin {
		paths = append(paths[:len(paths):len(paths)], stdinSource)
	}

	var data any

	for _, path := range paths {
		buf, err := readInput(ctx, path)
		if err != nil {
			return nil, err
		}

		doc, err := decodeDocument(buf)
		if err != nil {
			return nil, lang.ErrDecodeContext.With(slog.String("file", path)).Wrap(err)
		}

		data = merge(data, doc)
	}

	if len(set) == 0 {
		return data, nil
	}

	root, ok := data.(map[string]any)
	if !ok {
		if data != nil {
			return nil, ErrSetContext.With(slog.String("kind", value.Of(data).String()))
		}

		root = make(map[string]any)
	}

	for key, text := range set {
		assign(root, strings.Split(key, "."), scalar(text))
	}

	return root, nil
}

func merge(dst, src any) any {
	d, dok := dst.(map[string]any)
	s, sok := src.(map[string]any)

	if !dok || !sok {
		return src
	}

	for k, v := range s {
		d[k] = merge(d[k], v)
	}

	return d
}

func assign(m map[string]any, path []string, v any) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}

		m = next
	}

	m[path[len(path)-1]] = v
}

func scalar(text string) any {
	doc, err := decodeDocument([]byte(text))
	if err != nil {
		return text
	}

	switch doc.(type) {
	case []any, map[string]any:
		return text
	}

	return doc
}

// signed converts the integers produced by the decoder to int64 where they
// fit, so that every context integer has one type whatever its sign.
func signed(v any) any {
	switch c := v.(type) {
	case int:
		return int64(c)
	case uint64:
		if c <= math.MaxInt64 {
			return int64(c)
		}
	case []any:
		for i, e := range c {
			c[i] = signed(e)
		}
	case map[string]any:
		for k, e := range c {
			c[k] = signed(e)
		}
	}

	return v
}
