package project

// AudioFormat holds the recording format settings for a project.
type AudioFormat struct {
	Channels int `json:"channels"`
}

// Project is a container for recording sessions. Projects are created
// lazily on first use and never deleted.
type Project struct {
	Name                              string      `json:"name"`
	Description                       string      `json:"description"`
	AudioFormat                       AudioFormat `json:"audioFormat"`
	SpeakerWindowShowStopRecordAction bool        `json:"speakerWindowShowStopRecordAction"`
	RecordingDeviceWakeLock           bool        `json:"recordingDeviceWakeLock"`
}

// NewWithDefaults builds a project document with the default field set.
func NewWithDefaults(name string) *Project {
	if name == "" {
		name = "Noname"
	}
	return &Project{
		Name:                              name,
		Description:                       "No description",
		AudioFormat:                       AudioFormat{Channels: 1},
		SpeakerWindowShowStopRecordAction: true,
		RecordingDeviceWakeLock:           true,
	}
}
