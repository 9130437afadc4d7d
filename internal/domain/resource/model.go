// Package resource manages stored binary assets (prompt images and the
// like), kept base64-encoded in the document store. The import CLI is the
// write path; the project image endpoint is the read path.
package resource

// Resource is one stored asset. Project scopes the asset to a single
// project; an empty Project means it is shared.
type Resource struct {
	ID       int64  `json:"id"`
	Project  string `json:"project,omitempty"`
	ScriptID int64  `json:"scriptId,omitempty"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	// Data is the base64-encoded file content.
	Data string `json:"data"`
}
