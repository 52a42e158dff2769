package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// FormatValue is the --format flag: an enum over the two output modes.
type FormatValue string

const (
	FormatConsole FormatValue = "console"
	FormatJSON    FormatValue = "json"
)

var _ pflag.Value = (*FormatValue)(nil)

func (f *FormatValue) String() string {
	return string(*f)
}

func (f *FormatValue) Set(s string) error {
	switch FormatValue(s) {
	case FormatConsole, FormatJSON:
		*f = FormatValue(s)
		return nil
	}
	return fmt.Errorf("invalid format %q (expected json or console)", s)
}

func (f *FormatValue) Type() string {
	return "format"
}
