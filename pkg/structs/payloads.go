package structs

// Public task payloads. These travel to workers as the "payload" of a
// dispatched task; input locations are URLs the worker can GET with its
// capability token, outputs are PUT back the same way.

// TranscodeWebVideoPayload asks for a single web-compatible video rendition.
type TranscodeWebVideoPayload struct {
	Input      string `json:"input"`
	Resolution int    `json:"resolution"`
	FPS        int    `json:"fps,omitempty"`
}

// TranscodeAudioMergePayload muxes a still image / preview with an audio file
// into a playable video.
type TranscodeAudioMergePayload struct {
	AudioInput   string `json:"audio_input"`
	PreviewInput string `json:"preview_input"`
	Resolution   int    `json:"resolution"`
}

// GenerateTranscriptionPayload asks for a subtitle (VTT) file.
type GenerateTranscriptionPayload struct {
	Input    string `json:"input"`
	Language string `json:"language,omitempty"`
}

// StudioEditPayload applies an ordered list of edits (cut, intro/outro,
// watermark) to a source video.
type StudioEditPayload struct {
	Input string      `json:"input"`
	Edits []StudioCut `json:"edits"`
}

type StudioCut struct {
	Kind  string  `json:"kind"`
	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`
	File  string  `json:"file,omitempty"`
}

// ReplaceSourcePayload swaps the stored source file of a video for a newly
// produced one, typically the final stage of a studio-edit pipeline.
type ReplaceSourcePayload struct {
	Input string `json:"input"`
}

// Private (server-only) context carried alongside transcode payloads.
type TranscodePrivate struct {
	// VideoID is the entity the produced file should attach to.
	VideoID string `json:"video_id"`

	// NextResolutions are renditions still to be produced; the completion
	// strategy chains one follow-up task per entry.
	NextResolutions []int `json:"next_resolutions,omitempty"`

	// DeleteInput marks the input file for cleanup once the pipeline ends.
	DeleteInput bool `json:"delete_input,omitempty"`
}

// StudioPrivate is the server-only context of studio-edit tasks.
type StudioPrivate struct {
	VideoID string `json:"video_id"`
}
