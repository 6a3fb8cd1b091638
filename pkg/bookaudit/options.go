// Package bookaudit provides one-shot workbook structure and macro analysis.
package bookaudit

import "github.com/ukaji3/bookaudit-go/pkg/bookaudit/automation"

// Options configures analysis behavior.
type Options struct {
	// IncludeVBA specifies whether macro extraction runs at all.
	// If nil, defaults to true.
	IncludeVBA *bool
	// AllowProjectFallback specifies whether the embedded VBA project is
	// parsed directly when no automation session is available.
	// If nil, defaults to true.
	AllowProjectFallback *bool
	// SessionFactory creates the automation session.
	// If nil, automation.NewSession is used.
	SessionFactory automation.Factory
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeVBA returns whether macro extraction runs.
func (o Options) ShouldIncludeVBA() bool {
	if o.IncludeVBA != nil {
		return *o.IncludeVBA
	}
	return true
}

// ShouldFallBackToProject returns whether the embedded project storage is
// parsed when no automation session is available.
func (o Options) ShouldFallBackToProject() bool {
	if o.AllowProjectFallback != nil {
		return *o.AllowProjectFallback
	}
	return true
}

func (o Options) sessionFactory() automation.Factory {
	if o.SessionFactory != nil {
		return o.SessionFactory
	}
	return automation.NewSession
}
