package probe

import "time"

type Option func(*Options)

type Options struct {
	Dialer   Dialer
	Interval time.Duration
	Timeout  time.Duration
}

func defaultOptions() *Options {
	return &Options{
		Dialer:   TCPDialer,
		Interval: 5 * time.Second,
		Timeout:  1 * time.Second,
	}
}

func loadOptions(opts ...Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}

func WithDialer(dialer Dialer) Option {
	return func(o *Options) {
		if dialer != nil {
			o.Dialer = dialer
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Interval = d
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Timeout = d
		}
	}
}
