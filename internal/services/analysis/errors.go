package analysis

import "fmt"

// UpstreamError marks a data-fetch failure that exhausted every fallback
// hop for a required series.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream data error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// GenerationError marks a failure of the external text-generation step,
// surfaced distinctly from data-fetch failures.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation error: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
