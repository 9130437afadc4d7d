package script

// DefaultScriptID is assigned to sessions whose creation request names no
// script. It matches the id the resource importer seeds.
const DefaultScriptID = 1245

// Script is read-only reference data holding the prompt items a session
// records against. The server never mutates scripts, so the document is
// carried opaquely.
type Script struct {
	ID       string
	Document map[string]any
}
