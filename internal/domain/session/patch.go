package session

// Patch is a sparse field-merge update for a session document. Every key
// present overwrites the corresponding session field, including status;
// transition legality is deliberately not enforced. The server reacts to
// transitions by firing events, it never blocks the write.
type Patch map[string]any

// StatusValue returns the status carried by the patch, if any.
func (p Patch) StatusValue() (Status, bool) {
	v, ok := p["status"]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	if !ok {
		return "", false
	}
	return Status(str), true
}

// RestartSignaled reports whether the patch carries a non-empty
// restartedDate, which marks a restart of an already completed session.
func (p Patch) RestartSignaled() bool {
	v, ok := p["restartedDate"]
	if !ok || v == nil {
		return false
	}
	if str, ok := v.(string); ok {
		return str != ""
	}
	return true
}

// Apply merges the patch into the session, field by field. When the patch
// signals a restart the stored status is forced to LOADED afterwards,
// overriding any literal status value in the same patch.
func (p Patch) Apply(s *Session) {
	doc := s.Document()
	for k, v := range p {
		doc[k] = v
	}
	*s = *FromDocument(doc)

	if p.RestartSignaled() {
		s.Status = StatusLoaded
	}
}
