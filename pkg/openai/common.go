// Types shared by several endpoint families
package openai

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

// Ptr returns a pointer to v, handy for optional request fields
func Ptr[T any](v T) *T {
	return &v
}

// Role defines the author of a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
	RoleTool      Role = "tool"
)

// Known reports whether r is one of the roles this package defines
func (r Role) Known() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleFunction, RoleTool:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// Metadata is the free-form key/value map attached to assistants objects
type Metadata map[string]string

// ListOrder sorts list results by creation time
type ListOrder string

const (
	ListOrderAsc  ListOrder = "asc"
	ListOrderDesc ListOrder = "desc"
)

// Known reports whether o is a defined sort order
func (o ListOrder) Known() bool {
	return o == ListOrderAsc || o == ListOrderDesc
}

func (o ListOrder) String() string { return string(o) }

// ListParams paginates list endpoints. Unset fields are not sent.
type ListParams struct {
	Limit  *int
	Order  ListOrder
	After  string
	Before string
}

// Values encodes the parameters as a query string
func (p *ListParams) Values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Limit != nil {
		q.Set("limit", strconv.Itoa(*p.Limit))
	}
	if p.Order != "" {
		q.Set("order", string(p.Order))
	}
	if p.After != "" {
		q.Set("after", p.After)
	}
	if p.Before != "" {
		q.Set("before", p.Before)
	}
	return q
}

// List is the paginated envelope returned by list endpoints
type List[T any] struct {
	ResponseMeta
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id,omitempty"`
	LastID  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more,omitempty"`
}

// DeletionStatus is returned by delete endpoints
type DeletionStatus struct {
	ResponseMeta
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Input is a string or a list of strings on the wire. A single element is
// sent as a plain string.
type Input []string

// MarshalJSON implements json.Marshaler
func (in Input) MarshalJSON() ([]byte, error) {
	if len(in) == 1 {
		return json.Marshal(in[0])
	}
	return json.Marshal([]string(in))
}

// UnmarshalJSON implements json.Unmarshaler
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*in = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Input{s}
		return nil
	default:
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*in = list
		return nil
	}
}
