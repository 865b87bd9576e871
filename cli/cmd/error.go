package cmd

import "github.com/ardnew/exprx/lang"

// Sentinel errors.
var (
	ErrNoTemplate   = lang.NewError("no template given")
	ErrEncodeOutput = lang.NewError("failed to encode output")
	ErrWriteConfig  = lang.NewError("failed to write configuration file")
	ErrFileExists   = lang.NewError("file exists")
	ErrSetContext   = lang.NewError("cannot assign into non-object context")
)
