package makigami

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is the package-wide logger. It discards output by default; the CLI
// redirects it to stderr when run with --verbose.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}
