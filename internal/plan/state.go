package plan

// State is the per-user view of generated plans: the raw text, the parsed
// plan and a loading flag for each environment. The With* methods return a
// modified copy and never touch the receiver, so a State can be shared
// between readers without locking.
type State struct {
	generated map[Environment]string
	parsed    map[Environment][]DayPlan
	loading   map[Environment]bool
}

// NewState returns an empty State with every environment marked loading,
// matching a client that has not fetched its saved plans yet.
func NewState() State {
	s := State{
		generated: map[Environment]string{},
		parsed:    map[Environment][]DayPlan{},
		loading:   map[Environment]bool{},
	}
	for _, env := range Environments {
		s.loading[env] = true
	}
	return s
}

func (s State) copy() State {
	c := State{
		generated: make(map[Environment]string, len(s.generated)),
		parsed:    make(map[Environment][]DayPlan, len(s.parsed)),
		loading:   make(map[Environment]bool, len(s.loading)),
	}
	for k, v := range s.generated {
		c.generated[k] = v
	}
	for k, v := range s.parsed {
		c.parsed[k] = v
	}
	for k, v := range s.loading {
		c.loading[k] = v
	}
	return c
}

// WithGenerated records the raw plan text for env.
func (s State) WithGenerated(env Environment, text string) State {
	c := s.copy()
	c.generated[env] = text
	return c
}

// WithParsed records the structured plan for env and clears its loading flag.
func (s State) WithParsed(env Environment, days []DayPlan) State {
	c := s.copy()
	c.parsed[env] = days
	c.loading[env] = false
	return c
}

// WithLoading sets the loading flag for env.
func (s State) WithLoading(env Environment, loading bool) State {
	c := s.copy()
	c.loading[env] = loading
	return c
}

// Generated returns the raw plan text for env, if any.
func (s State) Generated(env Environment) (string, bool) {
	text, ok := s.generated[env]
	return text, ok
}

// Plan returns the structured plan for env.
func (s State) Plan(env Environment) []DayPlan {
	return s.parsed[env]
}

// Loading reports whether env is still loading.
func (s State) Loading(env Environment) bool {
	return s.loading[env]
}

// FirstDay returns the label of the first day of env's plan, the default
// selection when a plan is shown. It is empty when no plan exists.
func (s State) FirstDay(env Environment) string {
	if days := s.parsed[env]; len(days) > 0 {
		return days[0].Day
	}
	return ""
}
