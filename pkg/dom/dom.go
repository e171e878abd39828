// Package dom abstracts the browser collaborators of the playback bridge:
// the native <video> element and the hls.js streaming runtime. The player
// package is written against these interfaces so the bridge logic can be
// exercised without a browser; the js/wasm build binds them to the real DOM.
package dom

import "errors"

// Sentinel errors for browser collaborators.
var (
	// ErrMissingRuntime is returned when the hls.js runtime object cannot be
	// constructed because its script was never loaded into the page.
	ErrMissingRuntime = errors.New("dom: hls.js script is not loaded; add the hls.js script tag to your page")

	// ErrUnavailable is returned by the stub implementations used on
	// non-browser builds.
	ErrUnavailable = errors.New("dom: browser environment unavailable")
)

// Media element error codes, mirroring the MediaError numeric enumeration
// reported by the browser.
const (
	// MediaErrAborted indicates the user agent aborted the fetch.
	MediaErrAborted = 1
	// MediaErrNetwork indicates a network failure while fetching media.
	MediaErrNetwork = 2
	// MediaErrDecode indicates the media could not be decoded.
	MediaErrDecode = 3
	// MediaErrSrcNotSupported indicates the source format is not supported.
	MediaErrSrcNotSupported = 4
)

// MediaError is the structured error object exposed by a media element after
// an "error" event. Message may be empty; the element's generic error signal
// carries no detail on its own.
type MediaError struct {
	Code    int
	Message string
}

// TimeRange is one buffered span of a media element, in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// MediaElement is the subset of the browser HTMLVideoElement surface the
// playback controller needs. Implementations are not safe for concurrent use;
// the bridge drives them from a single event loop.
type MediaElement interface {
	// SetSource assigns the element's src and begins resource selection.
	SetSource(uri string)

	// SetAttribute sets a content attribute (e.g. "playsinline").
	SetAttribute(name, value string)

	// RemoveAttribute removes a content attribute. Removing "src" followed
	// by Load releases the element's network and buffer resources.
	RemoveAttribute(name string)

	// Load resets the element and restarts resource selection.
	Load()

	// Play requests playback start. The request is asynchronous; if the
	// browser rejects it (e.g. autoplay policy), onRejected is invoked with
	// the rejection's name and message. onRejected may be nil.
	Play(onRejected func(name, message string))

	// Pause halts playback.
	Pause()

	SetLoop(loop bool)
	SetMuted(muted bool)
	SetVolume(volume float64)
	SetPlaybackRate(rate float64)

	// SetCurrentTime seeks to the given offset in fractional seconds.
	SetCurrentTime(seconds float64)

	// CurrentTime returns the playback position in fractional seconds.
	CurrentTime() float64

	// Duration returns the media duration in seconds. May be +Inf for live
	// streams and NaN before metadata is available.
	Duration() float64

	// VideoSize returns the natural width and height of the video.
	VideoSize() (width, height int)

	// Buffered returns the currently buffered time ranges.
	Buffered() []TimeRange

	// Error returns the element's structured error object, or nil if the
	// element is not in an error state.
	Error() *MediaError

	// CanPlayType reports the element's confidence that it can play the
	// given MIME type: "probably", "maybe", or "" for unsupported.
	CanPlayType(mimeType string) string

	// AddEventListener subscribes fn to the named media event and returns a
	// removal function. The removal function is idempotent.
	AddEventListener(event string, fn func()) (remove func())
}

// ElementFactory creates video elements. On js/wasm the element is created in
// the document and tagged with the given view ID so the host UI framework can
// mount it; the factory does not attach it to the tree itself.
type ElementFactory interface {
	CreateVideoElement(viewID string) (MediaElement, error)
}

// HLSRuntime describes the globally loaded hls.js library.
type HLSRuntime interface {
	// Supported reports whether hls.js considers itself usable in this
	// environment (Media Source Extensions present, script loaded).
	Supported() bool

	// New constructs a fresh hls.js instance. Returns ErrMissingRuntime if
	// the script was never loaded into the page.
	New() (HLSAttachment, error)
}

// HLSAttachment is one hls.js instance bound to a single media element.
type HLSAttachment interface {
	// AttachMedia binds the instance to the element's media source.
	AttachMedia(media MediaElement)

	// LoadSource starts loading the playlist at the given URI.
	LoadSource(uri string)

	// OnMediaAttached registers fn for the MEDIA_ATTACHED event.
	OnMediaAttached(fn func())

	// OnError registers fn for the library's ERROR event. details carries
	// the library's own error description.
	OnError(fn func(details string))

	// Destroy detaches from the media element and releases the instance.
	Destroy()
}
