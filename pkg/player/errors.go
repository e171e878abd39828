package player

import "errors"

// Sentinel errors for registry and controller operations.
var (
	// ErrInvalidSource is returned when a source descriptor cannot be
	// resolved to a playable URI.
	ErrInvalidSource = errors.New("player: invalid video source")

	// ErrUnsupportedSource is returned for source variants that cannot be
	// played in this environment, such as local files on the web.
	ErrUnsupportedSource = errors.New("player: source type unsupported in this environment")

	// ErrUnknownHandle is returned when an operation names a handle that is
	// not live (never created, or already disposed).
	ErrUnknownHandle = errors.New("player: unknown playback handle")

	// ErrDisposed is returned when operating directly on a disposed
	// controller.
	ErrDisposed = errors.New("player: controller disposed")
)

// errNoMediaErrorObject flags an element error signal observed while the
// element reports no structured error object. Reported to the bridge error
// handler, never delivered on an event stream.
var errNoMediaErrorObject = errors.New("player: error signal without media error object")
