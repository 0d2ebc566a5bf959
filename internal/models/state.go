// ABOUTME: WorkflowState value type threaded through the RAG pipeline stages
// ABOUTME: Immutable-style updates via With* methods keep stages pure and replay-safe
package models

// Step records the last pipeline stage that completed. Steps advance
// monotonically; no stage regresses the step.
type Step string

const (
	StepStart     Step = "start"
	StepRouted    Step = "routed"
	StepRetrieved Step = "retrieved"
	StepReranked  Step = "reranked"
	StepCompleted Step = "completed"
	StepErrored   Step = "errored"
)

// StepOrder is the fixed pipeline sequence, excluding the absorbing
// errored state
var StepOrder = []Step{StepStart, StepRouted, StepRetrieved, StepReranked, StepCompleted}

// IsTerminal reports whether no further stage may run after s
func (s Step) IsTerminal() bool {
	return s == StepCompleted || s == StepErrored
}

// WorkflowState is the shared state of one pipeline run. It is owned
// exclusively by its run; stages never mutate it in place but return a
// new value built with the With* methods below.
type WorkflowState struct {
	Messages      []Message              `json:"messages"`
	ClientID      string                 `json:"client_id"`
	Query         string                 `json:"query,omitempty"`
	Domain        Domain                 `json:"domain,omitempty"`
	RetrievedDocs []Document             `json:"retrieved_docs,omitempty"`
	CurrentStep   Step                   `json:"current_step"`
	Error         string                 `json:"error,omitempty"`
	FinalResponse string                 `json:"final_response,omitempty"`
	Context       map[string]interface{} `json:"context,omitempty"`
}

// NewWorkflowState creates the initial state for a run from a
// client-supplied query and identity
func NewWorkflowState(clientID, query string) WorkflowState {
	return WorkflowState{
		Messages:    []Message{NewUserMessage(query)},
		ClientID:    clientID,
		Query:       query,
		CurrentStep: StepStart,
	}
}

// LastMessageText returns the flattened text of the most recent message,
// or the empty string when there are no messages
func (s WorkflowState) LastMessageText() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Text()
}

// clone copies the state including its slices and context map so that
// updates never alias a previous value
func (s WorkflowState) clone() WorkflowState {
	out := s
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	if s.RetrievedDocs != nil {
		out.RetrievedDocs = make([]Document, len(s.RetrievedDocs))
		copy(out.RetrievedDocs, s.RetrievedDocs)
	}
	if s.Context != nil {
		out.Context = make(map[string]interface{}, len(s.Context))
		for k, v := range s.Context {
			out.Context[k] = v
		}
	}
	return out
}

// WithStep returns a copy of the state with the step advanced
func (s WorkflowState) WithStep(step Step) WorkflowState {
	out := s.clone()
	out.CurrentStep = step
	return out
}

// WithQuery returns a copy of the state with the query set
func (s WorkflowState) WithQuery(query string) WorkflowState {
	out := s.clone()
	out.Query = query
	return out
}

// WithDomain returns a copy of the state with the domain set. The
// domain is set exactly once, by the routing stage.
func (s WorkflowState) WithDomain(d Domain) WorkflowState {
	out := s.clone()
	out.Domain = d
	return out
}

// WithDocs returns a copy of the state with retrieved_docs replaced
func (s WorkflowState) WithDocs(docs []Document) WorkflowState {
	out := s.clone()
	out.RetrievedDocs = docs
	return out
}

// WithError returns a copy of the state moved to the absorbing errored
// state
func (s WorkflowState) WithError(msg string) WorkflowState {
	out := s.clone()
	out.Error = msg
	out.CurrentStep = StepErrored
	return out
}

// WithFinalResponse returns a copy of the state with the final answer set
func (s WorkflowState) WithFinalResponse(text string) WorkflowState {
	out := s.clone()
	out.FinalResponse = text
	return out
}

// AppendMessage returns a copy of the state with msg appended to the
// conversation history
func (s WorkflowState) AppendMessage(msg Message) WorkflowState {
	out := s.clone()
	out.Messages = append(out.Messages, msg)
	return out
}

// WithContextValue returns a copy of the state with a stage-local
// scratch value recorded under key
func (s WorkflowState) WithContextValue(key string, value interface{}) WorkflowState {
	out := s.clone()
	if out.Context == nil {
		out.Context = make(map[string]interface{})
	}
	out.Context[key] = value
	return out
}
