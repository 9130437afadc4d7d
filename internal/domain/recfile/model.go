package recfile

import "time"

// Recfile is the metadata record for one uploaded audio chunk. It is
// created once per successful upload and immutable afterward. The field
// names follow the wsrng wire format.
type Recfile struct {
	// RecordingFileID is the per-item sequence number, matching the stored
	// chunk's filename without its extension.
	RecordingFileID int       `json:"recordingFileId"`
	Project         string    `json:"project"`
	Session         string    `json:"session"`
	Date            time.Time `json:"date"`
	Recording       Recording `json:"recording"`
}

// Recording describes the captured audio for one script item.
type Recording struct {
	MediaItems      []MediaItem     `json:"mediaitems"`
	ItemCode        string          `json:"itemcode"`
	RecDuration     int             `json:"recduration"`
	RecInstructions RecInstructions `json:"recinstructions"`
}

// MediaItem carries the prompt text the chunk was recorded against.
type MediaItem struct {
	AnnotationTemplate bool   `json:"annotationTemplate"`
	Text               string `json:"text"`
}

// RecInstructions mirrors the recinstructions block of the script item.
type RecInstructions struct {
	RecInstructions string `json:"recinstructions"`
}
