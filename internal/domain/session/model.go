package session

import (
	"maps"

	json "github.com/goccy/go-json"
)

// Status is the lifecycle status of a recording session.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusLoaded    Status = "LOADED"
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
)

// Session tracks one recording pass through a script. The recorder client
// patches arbitrary fields onto its session document, so unknown fields are
// carried in Extra and round-trip through storage untouched.
type Session struct {
	SessionID     string
	Project       string
	Script        any
	Status        Status
	Type          string
	Sealed        bool
	DebugMode     bool
	LoadedDate    string
	StartedDate   string
	RestartedDate string
	Extra         map[string]any
}

// Document flattens the session into its wire/storage form. Extra fields
// come first so the typed fields always win on key collision.
func (s *Session) Document() map[string]any {
	doc := make(map[string]any, len(s.Extra)+10)
	maps.Copy(doc, s.Extra)
	doc["sessionId"] = s.SessionID
	doc["project"] = s.Project
	doc["script"] = s.Script
	doc["status"] = string(s.Status)
	doc["type"] = s.Type
	doc["sealed"] = s.Sealed
	doc["debugMode"] = s.DebugMode
	if s.LoadedDate != "" {
		doc["loadedDate"] = s.LoadedDate
	}
	if s.StartedDate != "" {
		doc["startedDate"] = s.StartedDate
	}
	if s.RestartedDate != "" {
		doc["restartedDate"] = s.RestartedDate
	}
	return doc
}

// FromDocument builds a session from its wire/storage form.
func FromDocument(doc map[string]any) *Session {
	s := &Session{Extra: make(map[string]any)}
	for k, v := range doc {
		switch k {
		case "sessionId":
			s.SessionID = asString(v)
		case "project":
			s.Project = asString(v)
		case "script":
			s.Script = v
		case "status":
			s.Status = Status(asString(v))
		case "type":
			s.Type = asString(v)
		case "sealed":
			s.Sealed = asBool(v)
		case "debugMode":
			s.DebugMode = asBool(v)
		case "loadedDate":
			s.LoadedDate = asString(v)
		case "startedDate":
			s.StartedDate = asString(v)
		case "restartedDate":
			s.RestartedDate = asString(v)
		default:
			s.Extra[k] = v
		}
	}
	return s
}

// Clone returns an independent copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Extra = maps.Clone(s.Extra)
	return &clone
}

// MarshalJSON serializes the full document including extra fields.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Document())
}

// UnmarshalJSON restores a session from its document form.
func (s *Session) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = *FromDocument(doc)
	return nil
}

func asString(v any) string {
	str, _ := v.(string)
	return str
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
