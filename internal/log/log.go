package log

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func newBaseLogger(version string) zerolog.Logger {
	return zerolog.
		New(io.Discard).
		With().
		Dict("app", zerolog.Dict().Str("version", version)).
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)
}

// NewPretty writes indented, coloured JSON lines for terminals.
func NewPretty(w io.Writer, version string) zerolog.Logger {
	return newBaseLogger(version).Output(newPrettyWriter(w))
}

func NewPacked(w io.Writer, version string) zerolog.Logger {
	return newBaseLogger(version).Output(w)
}

func newPrettyWriter(out io.Writer) prettyWriter {
	return prettyWriter{out}
}

type prettyWriter struct {
	out io.Writer
}

func (p prettyWriter) Write(line []byte) (int, error) {
	if n, err := p.out.Write(pretty.Color(pretty.Pretty(line), nil)); nil != err {
		return n, err
	}
	return len(line), nil
}
