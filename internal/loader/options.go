package loader

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		extensions: map[string]struct{}{
			".ts":  {},
			".tsx": {},
			".js":  {},
			".mjs": {},
			".cjs": {},
		},
		excludes: make(map[string]struct{}),
		debug:    &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithExtensions sets the file extensions to scan
func WithExtensions(exts []string) Option {
	return func(s *Service) {
		s.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			s.extensions[ext] = struct{}{}
		}
	}
}

// WithExcludes sets directory and file exclusion paths
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		s.debug = debugger
	}
}
