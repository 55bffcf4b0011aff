package nodes

type Option func(*Options)

type Options struct {
	strategy RouteStrategy
}

func defaultOptions() *Options {
	var counter uint64
	return &Options{
		strategy: RouteRoundRobin(&counter),
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

// WithRouteStrategy 设置新 session 选择主节点的策略，默认轮询
func WithRouteStrategy(strategy RouteStrategy) Option {
	return func(o *Options) {
		if strategy != nil {
			o.strategy = strategy
		}
	}
}
