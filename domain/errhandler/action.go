package errhandler

// Action is the closed set of corrective actions a presented error can
// recommend. Multiple composes a primary and a secondary action; derived
// predicates recurse into both.
type Action interface {
	// Label returns the button text for the action.
	Label() string
	// RequiresNavigation reports whether performing the action leaves the
	// current screen.
	RequiresNavigation() bool
	// IsDestructive reports whether the action abandons user state.
	IsDestructive() bool
	// AnalyticsLabel returns the event label recorded when the action runs.
	AnalyticsLabel() string
}

// Retry re-invokes the failed operation.
type Retry struct{}

func (Retry) Label() string            { return "Retry" }
func (Retry) RequiresNavigation() bool { return false }
func (Retry) IsDestructive() bool      { return false }
func (Retry) AnalyticsLabel() string   { return "retry" }

// Dismiss acknowledges the error without further effect.
type Dismiss struct{}

func (Dismiss) Label() string            { return "Dismiss" }
func (Dismiss) RequiresNavigation() bool { return false }
func (Dismiss) IsDestructive() bool      { return false }
func (Dismiss) AnalyticsLabel() string   { return "dismiss" }

// GoBack leaves the current screen.
type GoBack struct{}

func (GoBack) Label() string            { return "Go Back" }
func (GoBack) RequiresNavigation() bool { return true }
func (GoBack) IsDestructive() bool      { return true }
func (GoBack) AnalyticsLabel() string   { return "go_back" }

// Custom is a labeled action optionally navigating to a route.
type Custom struct {
	Text  string
	Route string
	Data  map[string]string
}

func (c Custom) Label() string            { return c.Text }
func (c Custom) RequiresNavigation() bool { return c.Route != "" }
func (c Custom) IsDestructive() bool      { return false }
func (c Custom) AnalyticsLabel() string   { return "custom:" + c.Text }

// Multiple pairs a primary and a secondary action.
type Multiple struct {
	Primary   Action
	Secondary Action
}

func (m Multiple) Label() string { return m.Primary.Label() }

func (m Multiple) RequiresNavigation() bool {
	return m.Primary.RequiresNavigation() || m.Secondary.RequiresNavigation()
}

func (m Multiple) IsDestructive() bool {
	return m.Primary.IsDestructive() || m.Secondary.IsDestructive()
}

func (m Multiple) AnalyticsLabel() string {
	return m.Primary.AnalyticsLabel() + "+" + m.Secondary.AnalyticsLabel()
}

// Labels flattens an action into its button texts, primary first.
func Labels(a Action) []string {
	if m, ok := a.(Multiple); ok {
		return append(Labels(m.Primary), Labels(m.Secondary)...)
	}
	if a == nil {
		return nil
	}
	return []string{a.Label()}
}
