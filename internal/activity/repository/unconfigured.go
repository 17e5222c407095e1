package repository

import (
	"context"
	"fmt"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
)

// Unconfigured stands in for the document store when no connection could be
// established at startup. The process keeps serving; every storage call fails
// with ErrNotConfigured, wrapping Cause when one is known.
type Unconfigured struct {
	Cause error
}

func (u Unconfigured) err() error {
	if u.Cause != nil {
		return fmt.Errorf("%w: %w", ErrNotConfigured, u.Cause)
	}
	return ErrNotConfigured
}

func (u Unconfigured) Insert(context.Context, *activity.Activity) error { return u.err() }

func (u Unconfigured) ListByUser(context.Context, string) ([]*activity.Activity, error) {
	return nil, u.err()
}

func (u Unconfigured) Query(context.Context, activity.Filter) ([]*activity.Activity, error) {
	return nil, u.err()
}

func (u Unconfigured) Get(context.Context, string, string) (*activity.Activity, error) {
	return nil, u.err()
}

func (u Unconfigured) Replace(context.Context, *activity.Activity) error { return u.err() }

func (u Unconfigured) Delete(context.Context, string, string) error { return u.err() }

func (u Unconfigured) Ping(context.Context) error { return u.err() }
