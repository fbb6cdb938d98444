package temporal

import (
	"context"

	"go.temporal.io/sdk/client"
)

// TemporalOrchestrator is the narrow slice of the Temporal client the API
// surface needs to start purchase workflows.
//
//go:generate mockgen -source=orchestrator.go -destination=../../mocks/temporal_orchestrator.go -package=mocks -mock_names=TemporalOrchestrator=MockTemporalOrchestrator
type TemporalOrchestrator interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}
