package adapter

import (
	"context"

	"go.temporal.io/sdk/activity"
)

// Activity defines the activity-side Temporal calls used by the executor
//
//go:generate mockgen -source=temporal.go -destination=../mocks/temporal.go -package=mocks -mock_names=Activity=MockActivity
type Activity interface {
	// GetInfo returns the activity info
	GetInfo(ctx context.Context) activity.Info
	// RecordHeartbeat reports progress of a long running activity
	RecordHeartbeat(ctx context.Context, details ...any)
}

// RealActivity implements Activity using the activity package
type RealActivity struct{}

// NewActivity creates a new real activity implementation
func NewActivity() Activity {
	return &RealActivity{}
}

func (a *RealActivity) GetInfo(ctx context.Context) activity.Info {
	return activity.GetInfo(ctx)
}

func (a *RealActivity) RecordHeartbeat(ctx context.Context, details ...any) {
	activity.RecordHeartbeat(ctx, details...)
}
