package extract

// options holds settings shared by the extractors.
type options struct {
	depth int
}

// Option configures an extractor.
type Option func(*options)

// WithElideDepth sets how many trailing path segments displayed paths keep.
func WithElideDepth(depth int) Option {
	return func(o *options) {
		o.depth = depth
	}
}

func newOptions(opts []Option) options {
	o := options{depth: DefaultElideDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
