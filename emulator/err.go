package emulator

import (
	"errors"

	"github.com/ezrec/ledseq/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrConfigStore     = errors.New(f("store kind must be rom or flash"))
	ErrConfigCapacity  = errors.New(f("capacity must be positive"))
	ErrConfigTicks     = errors.New(f("ticks must not be negative"))
	ErrConfigFreq      = errors.New(f("frequency must be positive"))
	ErrConfigTimescale = errors.New(f("timescale invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Tick   int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("tick %v line %v %v", err.Tick, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
