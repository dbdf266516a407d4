package console_test

import (
	"encoding/json"
	"testing"

	"foundation-backend/internal/console"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionUnmarshal(t *testing.T) {
	known := []console.Action{
		console.ActionSubmissionCreate,
		console.ActionSubmissionList,
		console.ActionSubmissionGet,
		console.ActionSubmissionReview,
		console.ActionDocumentCreate,
		console.ActionDocumentUpdate,
		console.ActionDocumentDelete,
		console.ActionDocumentChangeAuthor,
	}

	for _, want := range known {
		var a console.Action
		require.NoError(t, json.Unmarshal([]byte(`"`+string(want)+`"`), &a))
		assert.Equal(t, want, a)
	}
}

func TestActionUnmarshal_Unknown(t *testing.T) {
	var a console.Action
	err := json.Unmarshal([]byte(`"document.publish"`), &a)
	assert.ErrorIs(t, err, console.ErrUnknownAction)

	err = json.Unmarshal([]byte(`""`), &a)
	assert.ErrorIs(t, err, console.ErrUnknownAction)

	assert.Error(t, json.Unmarshal([]byte(`42`), &a), "non-string actions are rejected")
}

func TestRequestEnvelope(t *testing.T) {
	raw := []byte(`{"action":"submission.review","payload":{"id":"abc","decision":"approve"}}`)

	var req console.Request
	require.NoError(t, json.Unmarshal(raw, &req))

	assert.Equal(t, console.ActionSubmissionReview, req.Action)
	assert.JSONEq(t, `{"id":"abc","decision":"approve"}`, string(req.Payload))
}

func TestRequestEnvelope_UnknownActionFailsEarly(t *testing.T) {
	raw := []byte(`{"action":"member.delete","payload":{}}`)

	var req console.Request
	assert.ErrorIs(t, json.Unmarshal(raw, &req), console.ErrUnknownAction)
}
