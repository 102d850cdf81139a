package kappaml

import (
	"encoding/json"

	"github.com/kappaml/kappaml-go/pkg/constants"
)

// ModelID is the opaque identifier the service assigns to a hosted model.
type ModelID string

// String implements fmt.Stringer.
func (id ModelID) String() string {
	return string(id)
}

// Status is a deployment status reported by the service. Values other than
// StatusDeployed and StatusFailed mean the deployment has not finished.
type Status string

// Known deployment statuses.
const (
	StatusDeployed Status = constants.StatusDeployed
	StatusFailed   Status = constants.StatusFailed
	StatusPending  Status = constants.StatusPending
)

// Terminal reports whether the status ends a deployment.
func (s Status) Terminal() bool {
	return s == StatusDeployed || s == StatusFailed
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// MLType names the learning task of a model. The service defines the valid
// values; the client passes it through unchanged.
type MLType string

// Common task types.
const (
	MLTypeRegression     MLType = "regression"
	MLTypeClassification MLType = "classification"
)

// Features maps feature names to values for learning and prediction.
type Features map[string]any

// Model is the service's view of a hosted model.
type Model struct {
	ID     ModelID `json:"id"`
	Name   string  `json:"name,omitempty"`
	MLType MLType  `json:"ml_type,omitempty"`
	Status Status  `json:"status"`

	// Extra holds any other fields the service returned.
	Extra map[string]any `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (m *Model) UnmarshalJSON(data []byte) error {
	type plain Model
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range []string{"id", "name", "ml_type", "status"} {
		delete(all, k)
	}
	*m = Model(p)
	if len(all) > 0 {
		m.Extra = all
	}
	return nil
}

type createModelRequest struct {
	Name   string `json:"name"`
	MLType MLType `json:"ml_type"`
}

type learnRequest struct {
	Features Features `json:"features"`
	Target   any      `json:"target"`
}

type predictRequest struct {
	Features Features `json:"features"`
}
