package structs

// Result payloads workers report on success. The produced files themselves
// arrive via the task's output-file endpoint; the result payload names them.

type TranscodeResult struct {
	VideoFile string `json:"video_file"`
}

type TranscriptionResult struct {
	VTTFile  string `json:"vtt_file"`
	Language string `json:"language,omitempty"`
}

type StudioEditResult struct {
	VideoFile string `json:"video_file"`
}
