package trace

import (
	"github.com/ezrec/ledseq/translate"
)

var f = translate.From

// ErrTimescale is returned for a timescale that cannot be used.
type ErrTimescale string

func (err ErrTimescale) Error() string {
	return f("timescale '%v' invalid", string(err))
}
