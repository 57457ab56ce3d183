// Fine-tuning jobs
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// AutoOr is a hyperparameter that is either "auto" or an explicit number
type AutoOr[T int | float64] struct {
	Auto  bool
	Value T
}

// AutoValue lets the API pick the value
func AutoValue[T int | float64]() *AutoOr[T] {
	return &AutoOr[T]{Auto: true}
}

// FixedValue sets an explicit value
func FixedValue[T int | float64](v T) *AutoOr[T] {
	return &AutoOr[T]{Value: v}
}

// MarshalJSON implements json.Marshaler
func (a AutoOr[T]) MarshalJSON() ([]byte, error) {
	if a.Auto {
		return []byte(`"auto"`), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *AutoOr[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte(`"auto"`)) {
		*a = AutoOr[T]{Auto: true}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = AutoOr[T]{Value: v}
	return nil
}

// Hyperparameters of a fine-tuning job
type Hyperparameters struct {
	BatchSize              *AutoOr[int]     `json:"batch_size,omitempty"`
	LearningRateMultiplier *AutoOr[float64] `json:"learning_rate_multiplier,omitempty"`
	NEpochs                *AutoOr[int]     `json:"n_epochs,omitempty"`
}

// FineTuningJobRequest creates a fine-tuning job
type FineTuningJobRequest struct {
	Model           Model            `json:"model"`
	TrainingFile    string           `json:"training_file"`
	Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	Suffix          string           `json:"suffix,omitempty"`
	ValidationFile  string           `json:"validation_file,omitempty"`
}

// NewFineTuningJobRequest creates a request training model on a file
func NewFineTuningJobRequest(model Model, trainingFile string) FineTuningJobRequest {
	return FineTuningJobRequest{Model: model, TrainingFile: trainingFile}
}

// FineTuningJobStatus is the state of a job
type FineTuningJobStatus string

const (
	FineTuningJobStatusValidatingFiles FineTuningJobStatus = "validating_files"
	FineTuningJobStatusQueued          FineTuningJobStatus = "queued"
	FineTuningJobStatusRunning         FineTuningJobStatus = "running"
	FineTuningJobStatusSucceeded       FineTuningJobStatus = "succeeded"
	FineTuningJobStatusFailed          FineTuningJobStatus = "failed"
	FineTuningJobStatusCancelled       FineTuningJobStatus = "cancelled"
)

// Known reports whether s is a defined status
func (s FineTuningJobStatus) Known() bool {
	switch s {
	case FineTuningJobStatusValidatingFiles, FineTuningJobStatusQueued, FineTuningJobStatusRunning,
		FineTuningJobStatusSucceeded, FineTuningJobStatusFailed, FineTuningJobStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the job will not change anymore
func (s FineTuningJobStatus) IsTerminal() bool {
	return s == FineTuningJobStatusSucceeded || s == FineTuningJobStatusFailed || s == FineTuningJobStatusCancelled
}

// FineTuningJobError explains why a job failed
type FineTuningJobError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// FineTuningJob describes a fine-tuning job
type FineTuningJob struct {
	ResponseMeta
	ID              string              `json:"id"`
	Object          string              `json:"object"`
	CreatedAt       int64               `json:"created_at"`
	Error           *FineTuningJobError `json:"error,omitempty"`
	FineTunedModel  *string             `json:"fine_tuned_model,omitempty"`
	FinishedAt      *int64              `json:"finished_at,omitempty"`
	Hyperparameters Hyperparameters     `json:"hyperparameters"`
	Model           Model               `json:"model"`
	OrganizationID  string              `json:"organization_id"`
	ResultFiles     []string            `json:"result_files"`
	Status          FineTuningJobStatus `json:"status"`
	TrainedTokens   *int64              `json:"trained_tokens,omitempty"`
	TrainingFile    string              `json:"training_file"`
	ValidationFile  *string             `json:"validation_file,omitempty"`
}

// FineTuningJobEvent is a log line of a job
type FineTuningJobEvent struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// FineTuningJobList is the response of ListFineTuningJobs
type FineTuningJobList = List[FineTuningJob]

// FineTuningJobEventList is the response of ListFineTuningJobEvents
type FineTuningJobEventList = List[FineTuningJobEvent]

func afterLimit(after string, limit int) url.Values {
	q := url.Values{}
	if after != "" {
		q.Set("after", after)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// CreateFineTuningJob starts a fine-tuning job
func (c *Client) CreateFineTuningJob(ctx context.Context, req FineTuningJobRequest) (*FineTuningJob, error) {
	return doJSON[FineTuningJob](ctx, c, http.MethodPost, "/fine_tuning/jobs", withJSON(req))
}

// ListFineTuningJobs lists jobs. after and limit paginate; zero values are
// not sent.
func (c *Client) ListFineTuningJobs(ctx context.Context, after string, limit int) (*FineTuningJobList, error) {
	return doJSON[FineTuningJobList](ctx, c, http.MethodGet, "/fine_tuning/jobs", withQuery(afterLimit(after, limit)))
}

// RetrieveFineTuningJob returns a job
func (c *Client) RetrieveFineTuningJob(ctx context.Context, jobID string) (*FineTuningJob, error) {
	return doJSON[FineTuningJob](ctx, c, http.MethodGet, endpoint("/fine_tuning/jobs/%s", jobID))
}

// CancelFineTuningJob cancels a running job
func (c *Client) CancelFineTuningJob(ctx context.Context, jobID string) (*FineTuningJob, error) {
	return doJSON[FineTuningJob](ctx, c, http.MethodPost, endpoint("/fine_tuning/jobs/%s/cancel", jobID))
}

// ListFineTuningJobEvents lists the events of a job
func (c *Client) ListFineTuningJobEvents(ctx context.Context, jobID, after string, limit int) (*FineTuningJobEventList, error) {
	return doJSON[FineTuningJobEventList](ctx, c, http.MethodGet,
		endpoint("/fine_tuning/jobs/%s/events", jobID), withQuery(afterLimit(after, limit)))
}
