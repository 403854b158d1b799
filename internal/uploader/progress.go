package uploader

// ProgressSink receives transfer progress as a percentage in [0,100].
// Within one transfer, published values never decrease.
type ProgressSink interface {
	Publish(percent int)
}

// SinkFunc adapts a plain function to a ProgressSink
type SinkFunc func(percent int)

// Publish implements ProgressSink
func (f SinkFunc) Publish(percent int) {
	f(percent)
}

// discardSink swallows progress when the caller did not provide a sink
type discardSink struct{}

func (discardSink) Publish(int) {}

// monotonicSink clamps published values into [0,100] and never lets them
// go backwards, whatever the chunking underneath does
type monotonicSink struct {
	inner ProgressSink
	last  int
}

func newMonotonicSink(inner ProgressSink) *monotonicSink {
	if inner == nil {
		inner = discardSink{}
	}
	return &monotonicSink{inner: inner, last: -1}
}

func (m *monotonicSink) Publish(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= m.last {
		return
	}
	m.last = percent
	m.inner.Publish(percent)
}
