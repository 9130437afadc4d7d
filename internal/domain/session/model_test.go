package session_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/domain/session"
)

func TestFromDocument_RoundTrip(t *testing.T) {
	doc := map[string]any{
		"sessionId":  "s1",
		"project":    "p1",
		"status":     "CREATED",
		"type":       "NORM",
		"sealed":     false,
		"debugMode":  true,
		"script":     float64(1245),
		"speakerId":  "spk42",
		"loadedDate": "2026-01-02T10:00:00Z",
	}

	sess := session.FromDocument(doc)
	require.Equal(t, "s1", sess.SessionID)
	require.Equal(t, "p1", sess.Project)
	require.Equal(t, session.StatusCreated, sess.Status)
	require.True(t, sess.DebugMode)
	require.Equal(t, "2026-01-02T10:00:00Z", sess.LoadedDate)
	// unknown caller fields survive in Extra
	require.Equal(t, "spk42", sess.Extra["speakerId"])

	back := sess.Document()
	require.Equal(t, "s1", back["sessionId"])
	require.Equal(t, "spk42", back["speakerId"])
	require.Equal(t, "CREATED", back["status"])
	// absent date fields stay absent
	require.NotContains(t, back, "startedDate")
}

func TestSession_JSONPreservesExtraFields(t *testing.T) {
	raw := `{"sessionId":"s1","project":"p1","status":"LOADED","customField":{"nested":true}}`

	var sess session.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &sess))
	require.Equal(t, session.StatusLoaded, sess.Status)

	out, err := json.Marshal(sess)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Equal(t, map[string]any{"nested": true}, doc["customField"])
}

func TestPatch_RestartSignaled(t *testing.T) {
	require.False(t, session.Patch{}.RestartSignaled())
	require.False(t, session.Patch{"restartedDate": ""}.RestartSignaled())
	require.False(t, session.Patch{"restartedDate": nil}.RestartSignaled())
	require.True(t, session.Patch{"restartedDate": "2026-02-03"}.RestartSignaled())
}

func TestPatch_StatusValue(t *testing.T) {
	st, ok := session.Patch{"status": "COMPLETED"}.StatusValue()
	require.True(t, ok)
	require.Equal(t, session.StatusCompleted, st)

	_, ok = session.Patch{}.StatusValue()
	require.False(t, ok)
}

func TestPatch_Apply_MergesEveryKey(t *testing.T) {
	sess := session.FromDocument(map[string]any{
		"sessionId": "s1",
		"project":   "p1",
		"status":    "CREATED",
	})

	session.Patch{
		"status":      "STARTED",
		"startedDate": "2026-02-03T09:00:00Z",
		"speakerId":   "spk1",
	}.Apply(sess)

	require.Equal(t, session.StatusStarted, sess.Status)
	require.Equal(t, "2026-02-03T09:00:00Z", sess.StartedDate)
	require.Equal(t, "spk1", sess.Extra["speakerId"])
	require.Equal(t, "s1", sess.SessionID)
}

func TestPatch_Apply_RestartOverridesLiteralStatus(t *testing.T) {
	sess := session.FromDocument(map[string]any{
		"sessionId": "s1",
		"status":    "COMPLETED",
	})

	session.Patch{
		"status":        "COMPLETED",
		"restartedDate": "2026-02-03T09:00:00Z",
	}.Apply(sess)

	require.Equal(t, session.StatusLoaded, sess.Status)
	require.Equal(t, "2026-02-03T09:00:00Z", sess.RestartedDate)
}

func TestClone_Independent(t *testing.T) {
	sess := session.FromDocument(map[string]any{"sessionId": "s1", "speakerId": "a"})
	clone := sess.Clone()
	clone.Extra["speakerId"] = "b"
	clone.Status = session.StatusCompleted

	require.Equal(t, "a", sess.Extra["speakerId"])
	require.NotEqual(t, sess.Status, clone.Status)
}
