package services

import (
	"time"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// ServiceOptions carries dependencies shared by the resource services.
type ServiceOptions struct {
	// Metrics receives cache and batch counters. Defaults to NopMetrics.
	Metrics driven.Metrics
	// Ready reports whether the workspace finished initialisation.
	// Nil means always ready.
	Ready func() error
	// MailDetailConcurrency bounds concurrent message detail fetches.
	MailDetailConcurrency int
	// Now is the clock used for default calendar windows.
	Now func() time.Time
}

func (o ServiceOptions) withDefaults() ServiceOptions {
	if o.Metrics == nil {
		o.Metrics = driven.NopMetrics{}
	}
	if o.Ready == nil {
		o.Ready = func() error { return nil }
	}
	if o.MailDetailConcurrency <= 0 {
		o.MailDetailConcurrency = domain.DefaultMailDetailConcurrency
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
