package log

import "log/slog"

// Err returns an attribute holding err under the key "error". A nil err
// yields an empty attribute, which handlers omit.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	return slog.Any("error", err)
}
