package core

import (
	"encoding/json"
	"fmt"

	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

// Strategy is the per-type behaviour of a task. Create validates the spec
// before the task is stored; Complete inspects the finished task plus the
// worker's result and returns at most one follow-up task.
//
// Complete must be pure: it decides, the service persists.
type Strategy struct {
	Create   func(spec *structs.TaskSpec) error
	Complete func(task *structs.Task, result json.RawMessage) (*structs.CreateTaskRequest, error)
}

func defaultStrategies() map[string]*Strategy {
	return map[string]*Strategy{
		structs.TypeTranscodeWebVideo: {
			Create:   createTranscodeWebVideo,
			Complete: completeTranscodeWebVideo,
		},
		structs.TypeTranscodeAudioMerge: {
			Create:   createTranscodeAudioMerge,
			Complete: completeTranscodeAudioMerge,
		},
		structs.TypeGenerateTranscription: {
			Create:   createGenerateTranscription,
			Complete: completeGenerateTranscription,
		},
		structs.TypeStudioEdit: {
			Create:   createStudioEdit,
			Complete: completeStudioEdit,
		},
		structs.TypeReplaceSource: {
			Create:   createReplaceSource,
			Complete: completeNoFollowUp,
		},
	}
}

func createTranscodeWebVideo(spec *structs.TaskSpec) error {
	p := &structs.TranscodeWebVideoPayload{}
	if err := json.Unmarshal(spec.Payload, p); err != nil {
		return fmt.Errorf("%w bad %s payload: %v", errors.ErrInvalidArg, spec.Type, err)
	}
	if p.Input == "" || p.Resolution <= 0 {
		return fmt.Errorf("%w %s requires input and resolution", errors.ErrInvalidArg, spec.Type)
	}
	return nil
}

// completeTranscodeWebVideo chains the next rendition, if any remain.
// Each follow-up consumes one entry of the private next_resolutions list so
// renditions are produced one at a time, highest priority first.
func completeTranscodeWebVideo(task *structs.Task, result json.RawMessage) (*structs.CreateTaskRequest, error) {
	res := &structs.TranscodeResult{}
	if err := json.Unmarshal(result, res); err != nil {
		return nil, fmt.Errorf("%w bad %s result: %v", errors.ErrInvalidArg, task.Type, err)
	}
	if res.VideoFile == "" {
		return nil, fmt.Errorf("%w %s result requires video_file", errors.ErrInvalidArg, task.Type)
	}

	priv, err := transcodePrivate(task)
	if err != nil || len(priv.NextResolutions) == 0 {
		return nil, err
	}

	cur := &structs.TranscodeWebVideoPayload{}
	if err := json.Unmarshal(task.Payload, cur); err != nil {
		return nil, fmt.Errorf("%w bad %s payload: %v", errors.ErrInvalidArg, task.Type, err)
	}
	return nextTranscodeTask(task, priv, cur.Input, cur.FPS)
}

func createTranscodeAudioMerge(spec *structs.TaskSpec) error {
	p := &structs.TranscodeAudioMergePayload{}
	if err := json.Unmarshal(spec.Payload, p); err != nil {
		return fmt.Errorf("%w bad %s payload: %v", errors.ErrInvalidArg, spec.Type, err)
	}
	if p.AudioInput == "" || p.PreviewInput == "" || p.Resolution <= 0 {
		return fmt.Errorf("%w %s requires audio_input, preview_input and resolution", errors.ErrInvalidArg, spec.Type)
	}
	return nil
}

// completeTranscodeAudioMerge chains lower renditions off the merged video:
// the produced file is the source for any remaining resolutions.
func completeTranscodeAudioMerge(task *structs.Task, result json.RawMessage) (*structs.CreateTaskRequest, error) {
	res := &structs.TranscodeResult{}
	if err := json.Unmarshal(result, res); err != nil {
		return nil, fmt.Errorf("%w bad %s result: %v", errors.ErrInvalidArg, task.Type, err)
	}
	if res.VideoFile == "" {
		return nil, fmt.Errorf("%w %s result requires video_file", errors.ErrInvalidArg, task.Type)
	}

	priv, err := transcodePrivate(task)
	if err != nil || len(priv.NextResolutions) == 0 {
		return nil, err
	}
	return nextTranscodeTask(task, priv, res.VideoFile, 0)
}

func createGenerateTranscription(spec *structs.TaskSpec) error {
	p := &structs.GenerateTranscriptionPayload{}
	if err := json.Unmarshal(spec.Payload, p); err != nil {
		return fmt.Errorf("%w bad %s payload: %v", errors.ErrInvalidArg, spec.Type, err)
	}
	if p.Input == "" {
		return fmt.Errorf("%w %s requires input", errors.ErrInvalidArg, spec.Type)
	}
	return nil
}

func completeGenerateTranscription(task *structs.Task, result json.RawMessage) (*structs.CreateTaskRequest, error) {
	res := &structs.TranscriptionResult{}
	if err := json.Unmarshal(result, res); err != nil {
		return nil, fmt.Errorf("%w bad %s result: %v", errors.ErrInvalidArg, task.Type, err)
	}
	if res.VTTFile == "" {
		return nil, fmt.Errorf("%w %s result requires vtt_file", errors.ErrInvalidArg, task.Type)
	}
	return nil, nil
}

func createStudioEdit(spec *structs.TaskSpec) error {
	p := &structs.StudioEditPayload{}
	if err := json.Unmarshal(spec.Payload, p); err != nil {
		return fmt.Errorf("%w bad %s payload: %v", errors.ErrInvalidArg, spec.Type, err)
	}
	if p.Input == "" || len(p.Edits) == 0 {
		return fmt.Errorf("%w %s requires input and at least one edit", errors.ErrInvalidArg, spec.Type)
	}
	for _, e := range p.Edits {
		switch e.Kind {
		case "cut":
			if e.End <= e.Start {
				return fmt.Errorf("%w cut edit requires end > start", errors.ErrInvalidArg)
			}
		case "add-intro", "add-outro", "add-watermark":
			if e.File == "" {
				return fmt.Errorf("%w %s edit requires a file", errors.ErrInvalidArg, e.Kind)
			}
		default:
			return fmt.Errorf("%w unknown edit kind %q", errors.ErrInvalidArg, e.Kind)
		}
	}
	return nil
}

// completeStudioEdit swaps the produced video in as the new source.
func completeStudioEdit(task *structs.Task, result json.RawMessage) (*structs.CreateTaskRequest, error) {
	res := &structs.StudioEditResult{}
	if err := json.Unmarshal(result, res); err != nil {
		return nil, fmt.Errorf("%w bad %s result: %v", errors.ErrInvalidArg, task.Type, err)
	}
	if res.VideoFile == "" {
		return nil, fmt.Errorf("%w %s result requires video_file", errors.ErrInvalidArg, task.Type)
	}

	payload, err := json.Marshal(&structs.ReplaceSourcePayload{Input: res.VideoFile})
	if err != nil {
		return nil, err
	}
	return &structs.CreateTaskRequest{
		TaskSpec: structs.TaskSpec{
			Type:        structs.TypeReplaceSource,
			Payload:     payload,
			Priority:    task.Priority,
			MaxAttempts: task.MaxAttempts,
		},
		PrivateContext: task.Private,
	}, nil
}

func createReplaceSource(spec *structs.TaskSpec) error {
	p := &structs.ReplaceSourcePayload{}
	if err := json.Unmarshal(spec.Payload, p); err != nil {
		return fmt.Errorf("%w bad %s payload: %v", errors.ErrInvalidArg, spec.Type, err)
	}
	if p.Input == "" {
		return fmt.Errorf("%w %s requires input", errors.ErrInvalidArg, spec.Type)
	}
	return nil
}

func completeNoFollowUp(task *structs.Task, result json.RawMessage) (*structs.CreateTaskRequest, error) {
	if !json.Valid(result) {
		return nil, fmt.Errorf("%w %s result is not valid json", errors.ErrInvalidArg, task.Type)
	}
	return nil, nil
}

func transcodePrivate(task *structs.Task) (*structs.TranscodePrivate, error) {
	priv := &structs.TranscodePrivate{}
	if len(task.Private) == 0 {
		return priv, nil
	}
	if err := json.Unmarshal(task.Private, priv); err != nil {
		return nil, fmt.Errorf("%w bad private context on task %s: %v", errors.ErrInvalidState, task.ID, err)
	}
	return priv, nil
}

func nextTranscodeTask(task *structs.Task, priv *structs.TranscodePrivate, input string, fps int) (*structs.CreateTaskRequest, error) {
	payload, err := json.Marshal(&structs.TranscodeWebVideoPayload{
		Input:      input,
		Resolution: priv.NextResolutions[0],
		FPS:        fps,
	})
	if err != nil {
		return nil, err
	}
	private, err := json.Marshal(&structs.TranscodePrivate{
		VideoID:         priv.VideoID,
		NextResolutions: priv.NextResolutions[1:],
		DeleteInput:     priv.DeleteInput,
	})
	if err != nil {
		return nil, err
	}
	return &structs.CreateTaskRequest{
		TaskSpec: structs.TaskSpec{
			Type:        structs.TypeTranscodeWebVideo,
			Payload:     payload,
			Priority:    task.Priority,
			MaxAttempts: task.MaxAttempts,
		},
		PrivateContext: private,
	}, nil
}
