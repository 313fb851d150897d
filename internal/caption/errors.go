package caption

import "fmt"

// Phase identifies the pipeline stage in which a failure occurred.
type Phase string

const (
	PhasePreparing    Phase = "preparing"
	PhaseTranscribing Phase = "transcribing"
	PhaseGenerating   Phase = "generating"
	PhaseRendering    Phase = "rendering"
)

// PhaseError tags an underlying failure with the pipeline phase it surfaced in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// InPhase wraps err with its phase. Returns nil for a nil err.
func InPhase(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Err: err}
}

// MediaLoadError reports an unreadable, unsupported, or corrupt media source.
// Source names the failing stream ("video" or "audio").
type MediaLoadError struct {
	Source string
	Path   string
	Err    error
}

func (e *MediaLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s source %s: %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("load %s source: %v", e.Source, e.Err)
}

func (e *MediaLoadError) Unwrap() error { return e.Err }

// OracleError reports an empty transcription or malformed cue data from an
// external oracle. Oracle calls are never retried here; retry policy belongs
// to the caller.
type OracleError struct {
	Reason string
	Err    error
}

func (e *OracleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle: %s: %v", e.Reason, e.Err)
	}
	return "oracle: " + e.Reason
}

func (e *OracleError) Unwrap() error { return e.Err }

// ValidationError reports cue timing that violates monotonicity or coverage.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid cue timing: " + e.Reason }

// EncodingError reports the encoding sink rejecting a frame or audio block,
// or failing to finalize the output container.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
