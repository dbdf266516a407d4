package console

import (
	"encoding/json"
	"fmt"
)

// Action is the closed set of operations reachable through the console
// endpoint. Decoding rejects anything outside this set, so adding an action
// means adding a constant, a case in UnmarshalJSON and a case in the
// dispatch switch; the compiler and the decoder keep the three in step.
type Action string

const (
	ActionSubmissionCreate Action = "submission.create"
	ActionSubmissionList   Action = "submission.list"
	ActionSubmissionGet    Action = "submission.get"
	ActionSubmissionReview Action = "submission.review"

	ActionDocumentCreate       Action = "document.create"
	ActionDocumentUpdate       Action = "document.update"
	ActionDocumentDelete       Action = "document.delete"
	ActionDocumentChangeAuthor Action = "document.change_author"
)

var ErrUnknownAction = fmt.Errorf("unknown console action")

func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch Action(s) {
	case ActionSubmissionCreate, ActionSubmissionList, ActionSubmissionGet, ActionSubmissionReview,
		ActionDocumentCreate, ActionDocumentUpdate, ActionDocumentDelete, ActionDocumentChangeAuthor:
		*a = Action(s)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Request is the console envelope: which action, and its action-specific
// payload, decoded in two steps.
type Request struct {
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}
