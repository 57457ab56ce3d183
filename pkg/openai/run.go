// Runs and run steps (beta)
package openai

import (
	"context"
	"encoding/json"
	"net/http"
)

// RunStatus is the lifecycle state of a run
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusExpired        RunStatus = "expired"
)

// Known reports whether s is a defined status
func (s RunStatus) Known() bool {
	switch s {
	case RunStatusQueued, RunStatusInProgress, RunStatusRequiresAction, RunStatusCancelling,
		RunStatusCancelled, RunStatusFailed, RunStatusCompleted, RunStatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the run has stopped for good
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	default:
		return false
	}
}

// RunRequest starts a run of an assistant on a thread
type RunRequest struct {
	AssistantID  string   `json:"assistant_id"`
	Model        Model    `json:"model,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tools        []Tool   `json:"tools,omitempty"`
	Metadata     Metadata `json:"metadata,omitempty"`
}

// NewRunRequest runs the given assistant with its own settings
func NewRunRequest(assistantID string) RunRequest {
	return RunRequest{AssistantID: assistantID}
}

// CreateThreadAndRunRequest creates a thread and runs it in one call
type CreateThreadAndRunRequest struct {
	AssistantID  string         `json:"assistant_id"`
	Thread       *ThreadRequest `json:"thread,omitempty"`
	Model        Model          `json:"model,omitempty"`
	Instructions string         `json:"instructions,omitempty"`
	Tools        []Tool         `json:"tools,omitempty"`
	Metadata     Metadata       `json:"metadata,omitempty"`
}

// RequiredActionType is what a run waits for
type RequiredActionType string

const RequiredActionSubmitToolOutputs RequiredActionType = "submit_tool_outputs"

// SubmitToolOutputsAction lists the tool calls a run waits on
type SubmitToolOutputsAction struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// RequiredAction is set while a run is in requires_action
type RequiredAction struct {
	Type              RequiredActionType       `json:"type"`
	SubmitToolOutputs *SubmitToolOutputsAction `json:"submit_tool_outputs,omitempty"`
}

// RunError explains why a run failed
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Run is an execution of an assistant on a thread
type Run struct {
	ResponseMeta
	ID             string          `json:"id"`
	Object         string          `json:"object"`
	CreatedAt      int64           `json:"created_at"`
	ThreadID       string          `json:"thread_id"`
	AssistantID    string          `json:"assistant_id"`
	Status         RunStatus       `json:"status"`
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	LastError      *RunError       `json:"last_error,omitempty"`
	ExpiresAt      *int64          `json:"expires_at,omitempty"`
	StartedAt      *int64          `json:"started_at,omitempty"`
	CancelledAt    *int64          `json:"cancelled_at,omitempty"`
	FailedAt       *int64          `json:"failed_at,omitempty"`
	CompletedAt    *int64          `json:"completed_at,omitempty"`
	Model          Model           `json:"model"`
	Instructions   string          `json:"instructions"`
	Tools          []Tool          `json:"tools"`
	FileIDs        []string        `json:"file_ids"`
	Metadata       Metadata        `json:"metadata,omitempty"`
	Usage          *Usage          `json:"usage,omitempty"`
}

// PendingToolCalls returns the tool calls the run waits on, if any
func (r *Run) PendingToolCalls() []ToolCall {
	if r.Status != RunStatusRequiresAction || r.RequiredAction == nil || r.RequiredAction.SubmitToolOutputs == nil {
		return nil
	}
	return r.RequiredAction.SubmitToolOutputs.ToolCalls
}

// RunList is the response of ListRuns
type RunList = List[Run]

// ToolOutput is the result of one tool call submitted back to a run
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// SubmitToolOutputsRequest resumes a run waiting in requires_action
type SubmitToolOutputsRequest struct {
	ToolOutputs []ToolOutput `json:"tool_outputs"`
}

// RunStepType discriminates run steps
type RunStepType string

const (
	RunStepTypeMessageCreation RunStepType = "message_creation"
	RunStepTypeToolCalls       RunStepType = "tool_calls"
)

// Known reports whether t is a defined step type
func (t RunStepType) Known() bool {
	return t == RunStepTypeMessageCreation || t == RunStepTypeToolCalls
}

// RunStepStatus is the state of a run step
type RunStepStatus string

const (
	RunStepStatusInProgress RunStepStatus = "in_progress"
	RunStepStatusCancelled  RunStepStatus = "cancelled"
	RunStepStatusFailed     RunStepStatus = "failed"
	RunStepStatusCompleted  RunStepStatus = "completed"
	RunStepStatusExpired    RunStepStatus = "expired"
)

// Known reports whether s is a defined step status
func (s RunStepStatus) Known() bool {
	switch s {
	case RunStepStatusInProgress, RunStepStatusCancelled, RunStepStatusFailed,
		RunStepStatusCompleted, RunStepStatusExpired:
		return true
	default:
		return false
	}
}

// MessageCreation is the detail of a message_creation step
type MessageCreation struct {
	MessageID string `json:"message_id"`
}

// StepToolCall is a tool call made in a tool_calls step. Only function
// calls are decoded; the rest is available in Raw.
type StepToolCall struct {
	ID       string          `json:"id"`
	Type     ToolType        `json:"type"`
	Function *StepFunction   `json:"function,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// StepFunction is a function call with its output once known
type StepFunction struct {
	Name      string  `json:"name"`
	Arguments string  `json:"arguments"`
	Output    *string `json:"output,omitempty"`
}

// UnmarshalJSON keeps the original payload next to the decoded fields
func (t *StepToolCall) UnmarshalJSON(data []byte) error {
	type plain StepToolCall
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = StepToolCall(p)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// StepDetails describes what a step did
type StepDetails struct {
	Type            RunStepType      `json:"type"`
	MessageCreation *MessageCreation `json:"message_creation,omitempty"`
	ToolCalls       []StepToolCall   `json:"tool_calls,omitempty"`
}

// RunStep is one step of a run
type RunStep struct {
	ResponseMeta
	ID          string        `json:"id"`
	Object      string        `json:"object"`
	CreatedAt   int64         `json:"created_at"`
	AssistantID string        `json:"assistant_id"`
	ThreadID    string        `json:"thread_id"`
	RunID       string        `json:"run_id"`
	Type        RunStepType   `json:"type"`
	Status      RunStepStatus `json:"status"`
	StepDetails StepDetails   `json:"step_details"`
	LastError   *RunError     `json:"last_error,omitempty"`
	ExpiredAt   *int64        `json:"expired_at,omitempty"`
	CancelledAt *int64        `json:"cancelled_at,omitempty"`
	FailedAt    *int64        `json:"failed_at,omitempty"`
	CompletedAt *int64        `json:"completed_at,omitempty"`
	Metadata    Metadata      `json:"metadata,omitempty"`
	Usage       *Usage        `json:"usage,omitempty"`
}

// RunStepList is the response of ListRunSteps
type RunStepList = List[RunStep]

// CreateRun starts a run
func (c *Client) CreateRun(ctx context.Context, threadID string, req RunRequest) (*Run, error) {
	return doJSON[Run](ctx, c, http.MethodPost, endpoint("/threads/%s/runs", threadID), withJSON(req), withBeta())
}

// RetrieveRun returns a run
func (c *Client) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	return doJSON[Run](ctx, c, http.MethodGet, endpoint("/threads/%s/runs/%s", threadID, runID), withBeta())
}

// ModifyRun replaces the metadata of a run
func (c *Client) ModifyRun(ctx context.Context, threadID, runID string, metadata Metadata) (*Run, error) {
	return doJSON[Run](ctx, c, http.MethodPost, endpoint("/threads/%s/runs/%s", threadID, runID),
		withJSON(metadataRequest{Metadata: metadata}), withBeta())
}

// ListRuns lists the runs of a thread; params may be nil
func (c *Client) ListRuns(ctx context.Context, threadID string, params *ListParams) (*RunList, error) {
	return doJSON[RunList](ctx, c, http.MethodGet, endpoint("/threads/%s/runs", threadID),
		withQuery(params.Values()), withBeta())
}

// CancelRun cancels an in progress run
func (c *Client) CancelRun(ctx context.Context, threadID, runID string) (*Run, error) {
	return doJSON[Run](ctx, c, http.MethodPost, endpoint("/threads/%s/runs/%s/cancel", threadID, runID), withBeta())
}

// SubmitToolOutputs resumes a run waiting for tool results
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, req SubmitToolOutputsRequest) (*Run, error) {
	return doJSON[Run](ctx, c, http.MethodPost, endpoint("/threads/%s/runs/%s/submit_tool_outputs", threadID, runID),
		withJSON(req), withBeta())
}

// CreateThreadAndRun creates a thread and starts a run on it
func (c *Client) CreateThreadAndRun(ctx context.Context, req CreateThreadAndRunRequest) (*Run, error) {
	return doJSON[Run](ctx, c, http.MethodPost, "/threads/runs", withJSON(req), withBeta())
}

// RetrieveRunStep returns a step of a run
func (c *Client) RetrieveRunStep(ctx context.Context, threadID, runID, stepID string) (*RunStep, error) {
	return doJSON[RunStep](ctx, c, http.MethodGet,
		endpoint("/threads/%s/runs/%s/steps/%s", threadID, runID, stepID), withBeta())
}

// ListRunSteps lists the steps of a run; params may be nil
func (c *Client) ListRunSteps(ctx context.Context, threadID, runID string, params *ListParams) (*RunStepList, error) {
	return doJSON[RunStepList](ctx, c, http.MethodGet,
		endpoint("/threads/%s/runs/%s/steps", threadID, runID), withQuery(params.Values()), withBeta())
}
