package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor creates a worker interceptor that gives every
// activity execution its own Sentry hub, so logger.ErrorCtx inside activities
// reports with per-activity scope.
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{
		WorkerInterceptorBase: interceptor.WorkerInterceptorBase{},
	}
}

// SentryActivityInterceptor injects Sentry hub into activity context
type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

// InterceptActivity wraps activity execution to inject Sentry hub
func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{
			Next: next,
		},
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

// ExecuteActivity injects a cloned Sentry hub into the activity context
func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()
	ctx = sentry.SetHubOnContext(ctx, hub)
	return s.Next.ExecuteActivity(ctx, in)
}
