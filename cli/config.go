package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
)

// baseConfig is the name of the configuration file.
const baseConfig = "config.yaml"

// load returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(load(ctx), "/path/to/config.yaml")
//
// Keys are flag names. Nested maps are flattened by joining keys with "-",
// so both of the following set --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Underscores may be used in place of hyphens. The "ext" map is decoded with
// [ext.Decode], which accepts loosely typed switches such as "on" or "no":
//
//	ext:
//	  datetime: off
//	  regex: yes
//
// Command-line flags override config file values. A file that cannot be
// decoded is ignored with a warning.
func load(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		buf, err := io.ReadAll(r)
		if err != nil {
			return nil, lang.ErrReadInput.Wrap(err)
		}

		var doc map[string]any
		if err := yaml.UnmarshalContext(ctx, buf, &doc); err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				log.Err(lang.ErrDecodeConfig.Wrap(err)))

			return config{}, nil
		}

		conf := make(config)

		for k, v := range doc {
			if norm(k) == "ext" {
				if m, ok := v.(map[string]any); ok {
					if err := conf.setExt(m); err != nil {
						log.WarnContext(ctx, "ignoring extension configuration",
							log.Err(err))
					}

					continue
				}
			}

			conf.flatten(norm(k), v)
		}

		return conf, nil
	}
}

// config implements [kong.Resolver] over flattened flag names.
type config map[string]any

func norm(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

func (c config) flatten(prefix string, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		c[prefix] = scalar(v)

		return
	}

	for k, e := range m {
		c.flatten(prefix+"-"+norm(k), e)
	}
}

func (c config) setExt(m map[string]any) error {
	cfg, err := ext.Decode(m)
	if err != nil {
		return err
	}

	// Only keys present in the file override flag defaults.
	set := map[string]bool{
		"maths":    cfg.Maths,
		"datetime": cfg.Datetime,
		"cast":     cfg.Cast,
		"regex":    cfg.Regex,
	}

	for k := range m {
		if b, ok := set[norm(k)]; ok {
			c["ext-"+norm(k)] = b
		}
	}

	return nil
}

// scalar renders numbers as strings, which kong requires for parsing.
func scalar(v any) any {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
