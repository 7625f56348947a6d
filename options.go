package forecomb

import "github.com/aouyang1/go-forecomb/combine"

// Options configures a Combiner.
type Options struct {
	// Method is the combination method fit on Fit. Defaults to the
	// simple average.
	Method combine.Method
}

// NewDefaultOptions returns combiner options using the simple average.
func NewDefaultOptions() *Options {
	return &Options{
		Method: combine.NewSimpleAverage(),
	}
}
