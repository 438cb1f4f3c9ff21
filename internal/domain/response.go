package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Response validation errors
var (
	ErrResponseUserIDEmpty = errors.New("response user ID cannot be empty")
	ErrResponsesNil        = errors.New("responses cannot be nil")
)

// ResponseKind is the tag of a ResponseValue.
type ResponseKind string

// Response kinds
const (
	ResponseKindSingle   ResponseKind = "single"
	ResponseKindMultiple ResponseKind = "multiple"
)

// ResponseValue is a closed union over the two answer shapes: Single and
// Multiple. The unexported marker keeps other packages from adding variants.
type ResponseValue interface {
	Kind() ResponseKind
	isResponseValue()
}

// Single is an answer selecting exactly one option. It answers single choice,
// yes/no and scale questions.
type Single struct {
	OptionID string
}

// Kind implements ResponseValue.
func (Single) Kind() ResponseKind { return ResponseKindSingle }

func (Single) isResponseValue() {}

// Multiple is an answer selecting a set of options. It answers multiple
// choice questions.
type Multiple struct {
	OptionIDs []string
}

// NewMultiple builds a Multiple with duplicate ids removed and ids sorted.
func NewMultiple(optionIDs ...string) Multiple {
	ids := slices.Clone(optionIDs)
	slices.Sort(ids)
	return Multiple{OptionIDs: slices.Compact(ids)}
}

// Kind implements ResponseValue.
func (Multiple) Kind() ResponseKind { return ResponseKindMultiple }

func (Multiple) isResponseValue() {}

// Set returns the selected option ids as a set.
func (m Multiple) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(m.OptionIDs))
	for _, id := range m.OptionIDs {
		set[id] = struct{}{}
	}
	return set
}

// Responses maps question ids to answers. Iteration order is irrelevant.
type Responses map[string]ResponseValue

// Clone returns a copy that shares no mutable state with r.
func (r Responses) Clone() Responses {
	if r == nil {
		return nil
	}
	out := make(Responses, len(r))
	for qid, v := range r {
		if m, ok := v.(Multiple); ok {
			v = Multiple{OptionIDs: slices.Clone(m.OptionIDs)}
		}
		out[qid] = v
	}
	return out
}

// responseWire is the JSON shape of a single ResponseValue.
type responseWire struct {
	Kind      ResponseKind `json:"kind"`
	OptionID  string       `json:"option_id,omitempty"`
	OptionIDs []string     `json:"option_ids,omitempty"`
}

// MarshalJSON encodes each answer as a tagged object. Nil answers are skipped.
func (r Responses) MarshalJSON() ([]byte, error) {
	wire := make(map[string]responseWire, len(r))
	for qid, v := range r {
		switch val := v.(type) {
		case Single:
			wire[qid] = responseWire{Kind: ResponseKindSingle, OptionID: val.OptionID}
		case Multiple:
			ids := val.OptionIDs
			if ids == nil {
				ids = []string{}
			}
			wire[qid] = responseWire{Kind: ResponseKindMultiple, OptionIDs: ids}
		case nil:
			continue
		default:
			return nil, fmt.Errorf("%w: unsupported response value %T for question %s",
				ErrInvalidFormat, v, qid)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the tagged object form produced by MarshalJSON.
func (r *Responses) UnmarshalJSON(data []byte) error {
	var wire map[string]responseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := make(Responses, len(wire))
	for qid, w := range wire {
		switch ResponseKind(strings.ToLower(string(w.Kind))) {
		case ResponseKindSingle:
			out[qid] = Single{OptionID: w.OptionID}
		case ResponseKindMultiple:
			out[qid] = NewMultiple(w.OptionIDs...)
		default:
			return fmt.Errorf("%w: unknown response kind %q for question %s",
				ErrInvalidFormat, w.Kind, qid)
		}
	}

	*r = out
	return nil
}

// CompatibilityResponse is a completed, immutable snapshot of one user's
// questionnaire answers. Resubmission produces a new snapshot.
type CompatibilityResponse struct {
	UserID      string    `json:"user_id"`
	Responses   Responses `json:"responses"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewCompatibilityResponse snapshots the given answers for a user.
// The map is copied so later edits by the caller do not leak into the snapshot.
// Returns an error if validation fails.
func NewCompatibilityResponse(userID string, responses Responses, completedAt time.Time) (*CompatibilityResponse, error) {
	if responses == nil {
		responses = Responses{}
	}

	resp := &CompatibilityResponse{
		UserID:      userID,
		Responses:   responses.Clone(),
		CompletedAt: completedAt.UTC(),
	}

	if err := resp.Validate(); err != nil {
		return nil, err
	}

	return resp, nil
}

// Validate checks if the CompatibilityResponse has valid data.
func (r *CompatibilityResponse) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrResponseUserIDEmpty
	}

	if r.Responses == nil {
		return ErrResponsesNil
	}

	return nil
}
