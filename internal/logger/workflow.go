package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo carries the identifiers used to attribute a log line to a
// specific Temporal workflow execution.
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

// GetWorkflowInfo extracts workflow information from a workflow.Context.
// Returns nil if the context carries no workflow info.
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowTypeName := info.WorkflowType.Name
	if workflowTypeName == "" {
		workflowTypeName = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: workflowTypeName,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// workflowFields converts workflow info into zap fields.
func workflowFields(info *WorkflowInfo) []zap.Field {
	if info == nil {
		return nil
	}
	return []zap.Field{
		zap.String("workflow_type", info.WorkflowType),
		zap.String("workflow_id", info.WorkflowID),
		zap.String("run_id", info.RunID),
		zap.String("task_queue", info.TaskQueue),
	}
}

// InfoWf logs an info message with workflow context
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	Info(msg, append(workflowFields(GetWorkflowInfo(ctx)), fields...)...)
}

// ErrorWf logs an error message with workflow context
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	Error(err, append(workflowFields(GetWorkflowInfo(ctx)), fields...)...)
}

// WarnWf logs a warning message with workflow context
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	Warn(msg, append(workflowFields(GetWorkflowInfo(ctx)), fields...)...)
}

// DebugWf logs a debug message with workflow context
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	Debug(msg, append(workflowFields(GetWorkflowInfo(ctx)), fields...)...)
}
