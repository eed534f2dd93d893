package log

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/xeptore/flaw/v8"
)

// Flaw adds err to the event. Flaws are expanded with their records and
// stack traces; other errors use the standard error field.
func Flaw(err error) func(e *zerolog.Event) {
	return func(e *zerolog.Event) {
		flawErr := new(flaw.Flaw)
		if !errors.As(err, &flawErr) {
			e.Err(err)
			return
		}

		e.Dict(
			"error",
			zerolog.
				Dict().
				Str("message", flawErr.Inner).
				Str("type_name", flawErr.InnerType),
		)

		records := zerolog.Arr()
		for _, v := range flawErr.Records {
			b, err := json.MarshalWithOption(v.Payload, json.UnorderedMap(), json.DisableHTMLEscape())
			if nil != err {
				records.Dict(zerolog.Dict().Str("function", v.Function).Str("payload", fmt.Sprintf("%#+v", v.Payload)))
				continue
			}
			records.Dict(zerolog.Dict().Str("function", v.Function).RawJSON("payload", b))
		}
		e.Array("records", records)

		joined := zerolog.Arr()
		for _, v := range flawErr.JoinedErrors {
			joined.Dict(zerolog.Dict().Str("message", v.Message).Str("type_name", v.TypeName))
		}
		e.Array("joined_errors", joined)

		stackTraces := zerolog.Arr()
		for _, v := range flawErr.StackTrace {
			stackTraces.Dict(zerolog.Dict().Str("location", fmt.Sprintf("%s:%d", v.File, v.Line)).Str("function", v.Function))
		}
		e.Array("stack_traces", stackTraces)
	}
}
