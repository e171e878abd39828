package player

import (
	"time"

	"github.com/go-drift/webvideo/pkg/dom"
)

// EventKind identifies a playback lifecycle event variant.
type EventKind int

const (
	// EventInitialized is emitted exactly once per controller when the
	// media's duration and natural size become known.
	EventInitialized EventKind = iota

	// EventBufferingUpdate carries the element's currently buffered ranges.
	EventBufferingUpdate

	// EventCompleted is emitted when playback reaches the end of the media.
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventInitialized:
		return "initialized"
	case EventBufferingUpdate:
		return "bufferingUpdate"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// DurationRange is a closed interval of playback time at millisecond
// resolution.
type DurationRange struct {
	Start time.Duration
	End   time.Duration
}

// Event is one playback lifecycle event. Kind selects the variant; only the
// fields belonging to that variant are populated.
type Event struct {
	Kind EventKind

	// Initialized
	Duration time.Duration
	Width    int
	Height   int

	// BufferingUpdate
	Buffered []DurationRange
}

// Playback error kind names, keyed by the media element's numeric error code.
const (
	ErrNameAborted         = "MEDIA_ERR_ABORTED"
	ErrNameNetwork         = "MEDIA_ERR_NETWORK"
	ErrNameDecode          = "MEDIA_ERR_DECODE"
	ErrNameSrcNotSupported = "MEDIA_ERR_SRC_NOT_SUPPORTED"
)

// defaultErrorMessage substitutes for an empty native error message.
const defaultErrorMessage = "No further diagnostic information can be determined or provided."

// manifestErrorMessage is the fixed diagnostic for streaming-library
// failures. The library's own error category is deliberately not surfaced.
const manifestErrorMessage = "Unable to load manifest."

var errorCodeNames = map[int]string{
	dom.MediaErrAborted:         ErrNameAborted,
	dom.MediaErrNetwork:         ErrNameNetwork,
	dom.MediaErrDecode:          ErrNameDecode,
	dom.MediaErrSrcNotSupported: ErrNameSrcNotSupported,
}

var errorCodeDetails = map[int]string{
	dom.MediaErrAborted:         "The user canceled the fetching of the video.",
	dom.MediaErrNetwork:         "A network error occurred while fetching the video, despite having previously been available.",
	dom.MediaErrDecode:          "An error occurred while trying to decode the video, despite having previously been determined to be usable.",
	dom.MediaErrSrcNotSupported: "The video has been found to be unsuitable (missing or in a format not supported by your browser).",
}

// PlaybackError is a runtime media fault. It is delivered on the event
// stream rather than returned from transport operations; the controller
// remains usable after one is reported.
type PlaybackError struct {
	// Code is the error kind name (MEDIA_ERR_*), or the rejection name for
	// a denied play request.
	Code string
	// Message is human-readable; never empty.
	Message string
	// Detail carries optional fixed diagnostic text.
	Detail string
}

func (e *PlaybackError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Message + " (" + e.Detail + ")"
	}
	return e.Code + ": " + e.Message
}

// newMediaError normalizes a media element's structured error object.
func newMediaError(me *dom.MediaError) *PlaybackError {
	name, ok := errorCodeNames[me.Code]
	if !ok {
		name = "MEDIA_ERR_UNKNOWN"
	}
	message := me.Message
	if message == "" {
		message = defaultErrorMessage
	}
	return &PlaybackError{
		Code:    name,
		Message: message,
		Detail:  errorCodeDetails[me.Code],
	}
}

// newManifestError is the fixed mapping for streaming-library failures.
func newManifestError() *PlaybackError {
	return &PlaybackError{
		Code:    ErrNameNetwork,
		Message: manifestErrorMessage,
		Detail:  errorCodeDetails[dom.MediaErrNetwork],
	}
}

// newPlayRejectionError reports a denied play request using the rejection's
// own name and message instead of the code tables.
func newPlayRejectionError(name, message string) *PlaybackError {
	if name == "" {
		name = "MEDIA_ERR_UNKNOWN"
	}
	if message == "" {
		message = defaultErrorMessage
	}
	return &PlaybackError{Code: name, Message: message}
}
