package ext

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ardnew/exprx/lang"
)

// Decode decodes a loosely typed map, such as the "ext" section of a
// configuration file, into a Config. Keys are the json tag names of Config.
// Missing keys keep their [Default] value. Booleans may be given as
// strings ("true", "yes", "on", ...) or numbers.
func Decode(input map[string]any) (Config, error) {
	cfg := Default()

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			switchHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &cfg,
	})
	if err != nil {
		return Default(), lang.ErrDecodeConfig.Wrap(err)
	}

	if err := dec.Decode(input); err != nil {
		return Default(), lang.ErrDecodeConfig.Wrap(err).
			With(slog.String("section", "ext"))
	}

	return cfg, nil
}

// switchHook accepts the words commonly used for on/off switches in
// configuration files, which strconv.ParseBool does not.
func switchHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}

	switch strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String())) {
	case "yes", "y", "on", "enable", "enabled":
		return true, nil
	case "no", "n", "off", "disable", "disabled", "":
		return false, nil
	}

	return data, nil
}
