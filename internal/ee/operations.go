package ee

import (
	"context"
	"net/http"

	"github.com/openhydro/watermap-cli/internal/domain"
)

// Operation is a long-running export job handle.
type Operation struct {
	Name     string             `json:"name"`
	Metadata *OperationMetadata `json:"metadata,omitempty"`
	Done     bool               `json:"done,omitempty"`
	Error    *OperationError    `json:"error,omitempty"`
}

// OperationMetadata carries export progress as reported by the service.
type OperationMetadata struct {
	State       string  `json:"state,omitempty"`
	Description string  `json:"description,omitempty"`
	CreateTime  string  `json:"createTime,omitempty"`
	UpdateTime  string  `json:"updateTime,omitempty"`
	Progress    float64 `json:"progress,omitempty"`
}

// OperationError is the terminal failure payload of an operation.
type OperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JobState maps the operation onto the local job lifecycle.
func (o *Operation) JobState() domain.JobState {
	if o.Error != nil {
		return domain.JobStateFailed
	}
	if o.Metadata != nil && o.Metadata.State != "" {
		return domain.ParseJobState(o.Metadata.State)
	}
	if o.Done {
		return domain.JobStateSucceeded
	}
	return domain.JobStatePending
}

// ErrorMessage returns the failure reason, if any.
func (o *Operation) ErrorMessage() string {
	if o.Error == nil {
		return ""
	}
	return o.Error.Message
}

// GetOperation polls one operation by its full resource name
// (projects/*/operations/*).
func (c *Client) GetOperation(ctx context.Context, name string) (*Operation, error) {
	var op Operation
	if err := c.do(ctx, http.MethodGet, name, nil, nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}
