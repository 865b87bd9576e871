package cli

import (
	"github.com/alecthomas/kong"

	"github.com/ardnew/exprx/ext"
)

type extConfig struct {
	Maths    bool `default:"true" help:"Install math constants."                    negatable:""`
	Datetime bool `default:"true" help:"Install calendar and clock functions."      negatable:""`
	Cast     bool `default:"true" help:"Install the int, float, bool, str casts."   negatable:""`
	Regex    bool `default:"true" help:"Install regular expression functions."      negatable:""`
}

func (*extConfig) group() kong.Group {
	var group kong.Group

	group.Key = "ext"
	group.Title = "Extension groups"

	return group
}

// config returns the selection as an [ext.Config].
func (f *extConfig) config() ext.Config {
	return ext.Config{
		Maths:    f.Maths,
		Datetime: f.Datetime,
		Cast:     f.Cast,
		Regex:    f.Regex,
	}
}
