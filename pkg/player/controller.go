package player

import (
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-drift/webvideo/pkg/dom"
	"github.com/go-drift/webvideo/pkg/errors"
)

// deliveryStrategy selects how a controller feeds media into its element.
// It is decided once at construction and never re-evaluated.
type deliveryStrategy int

const (
	// strategyNative sets the element src directly because the browser can
	// natively play every probed content type.
	strategyNative deliveryStrategy = iota

	// strategyHLS attaches the hls.js runtime to the element and lets it
	// feed the media source from a segmented playlist.
	strategyHLS

	// strategyFallback sets the element src directly when neither probe
	// applies conclusively.
	strategyFallback
)

func (s deliveryStrategy) String() string {
	switch s {
	case strategyNative:
		return "native"
	case strategyHLS:
		return "hls"
	default:
		return "fallback"
	}
}

// nativeProbeTypes are the content types the native-capability probe checks.
// The probe deliberately requires all three to be playable, not just the
// current source's format.
var nativeProbeTypes = []string{
	"application/vnd.apple.mpegurl",
	"video/mp4",
	"video/webm",
}

// Controller owns one media element and bridges its playback lifecycle to an
// EventStream. Transport methods take effect synchronously on the element;
// Play is asynchronous end-to-end and reports start rejections on the event
// stream instead of failing the caller.
//
// All methods are safe for concurrent use, but the element and library
// callbacks are expected to arrive on the single browser event loop; events
// are delivered in the order their triggering signals are observed.
type Controller struct {
	mu sync.Mutex

	element dom.MediaElement
	hls     dom.HLSAttachment // non-nil only for strategyHLS
	uri     string
	viewID  string
	handle  int64
	mode    deliveryStrategy
	stream  *EventStream

	// initialized latches after the first initialization signal so the
	// initialized event fires exactly once however many signals arrive.
	initialized bool
	disposed    bool

	// removals detach the element listeners registered by this controller,
	// each exactly once, during Dispose.
	removals []func()
}

// NewController wires a controller to the given element and resolved URI.
// Strategy selection runs here, once:
//
//  1. native playback when the element reports every probed type playable,
//  2. hls.js when the runtime is usable and the URI names a playlist,
//  3. direct fallback otherwise.
//
// A usable runtime whose instance cannot be constructed (script never loaded)
// fails construction synchronously with dom.ErrMissingRuntime.
func NewController(element dom.MediaElement, runtime dom.HLSRuntime, uri string) (*Controller, error) {
	c := &Controller{
		element: element,
		uri:     uri,
		stream:  newEventStream(),
	}

	element.SetAttribute("playsinline", "true")

	c.mode = chooseStrategy(element, runtime, uri)
	switch c.mode {
	case strategyHLS:
		attachment, err := runtime.New()
		if err != nil {
			return nil, err
		}
		c.hls = attachment
		attachment.OnMediaAttached(func() {
			attachment.LoadSource(uri)
		})
		attachment.OnError(func(string) {
			// Coarse by contract: every library failure reports as a
			// network-kind manifest error.
			c.stream.sendError(newManifestError())
		})
		attachment.AttachMedia(element)
		c.listen("canplay", c.markInitialized)

	default:
		element.SetSource(uri)
		c.listen("loadedmetadata", c.markInitialized)
	}

	c.listen("error", c.handleElementError)
	c.listen("ended", func() {
		c.stream.send(Event{Kind: EventCompleted})
	})

	return c, nil
}

// chooseStrategy evaluates the delivery strategy probes in priority order.
func chooseStrategy(element dom.MediaElement, runtime dom.HLSRuntime, uri string) deliveryStrategy {
	if canPlayNatively(element) {
		return strategyNative
	}
	if runtime != nil && runtime.Supported() && isPlaylistURI(uri) {
		return strategyHLS
	}
	return strategyFallback
}

// canPlayNatively requires the element to report every probed type playable.
func canPlayNatively(element dom.MediaElement) bool {
	for _, mimeType := range nativeProbeTypes {
		if element.CanPlayType(mimeType) == "" {
			return false
		}
	}
	return true
}

// isPlaylistURI recognizes segmented-playlist references by filename
// convention. Query strings and fragments are ignored.
func isPlaylistURI(uri string) bool {
	path := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		path = u.Path
	}
	return strings.HasSuffix(strings.ToLower(path), ".m3u8")
}

// listen registers an element listener whose removal runs during Dispose.
func (c *Controller) listen(event string, fn func()) {
	remove := c.element.AddEventListener(event, fn)
	c.mu.Lock()
	c.removals = append(c.removals, remove)
	c.mu.Unlock()
}

// markInitialized fires the initialized event at most once per controller.
func (c *Controller) markInitialized() {
	c.mu.Lock()
	if c.initialized || c.disposed {
		c.mu.Unlock()
		return
	}
	c.initialized = true
	c.mu.Unlock()

	width, height := c.element.VideoSize()
	c.stream.send(Event{
		Kind:     EventInitialized,
		Duration: secondsToDuration(c.element.Duration()),
		Width:    width,
		Height:   height,
	})
}

// handleElementError normalizes the element's structured error object. The
// "error" event itself carries no detail; a signal with no object attached is
// reported to the bridge error handler rather than delivered to subscribers.
func (c *Controller) handleElementError() {
	mediaErr := c.element.Error()
	if mediaErr == nil {
		errors.Report(&errors.BridgeError{
			Op:     "player.Controller.handleElementError",
			Kind:   errors.KindDOM,
			Handle: c.handle,
			Err:    errNoMediaErrorObject,
		})
		return
	}
	c.stream.sendError(newMediaError(mediaErr))
}

// Events returns the controller's outbound event stream.
func (c *Controller) Events() *EventStream {
	return c.stream
}

// ViewID returns the handle-derived identifier under which the host UI
// mounts this controller's element.
func (c *Controller) ViewID() string {
	// Set by the registry at creation; the element id carries it.
	return c.viewID
}

// Play requests playback start. A rejected start (e.g. autoplay permission
// denial) is reported as a PlaybackError on the event stream using the
// rejection's own name and message; Play itself does not fail for it.
func (c *Controller) Play() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.element.Play(func(name, message string) {
		c.stream.sendError(newPlayRejectionError(name, message))
	})
	return nil
}

// Pause halts playback.
func (c *Controller) Pause() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.element.Pause()
	return nil
}

// SetLooping sets whether playback restarts at the end of the media.
func (c *Controller) SetLooping(looping bool) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.element.SetLoop(looping)
	return nil
}

// SetVolume sets the playback volume. volume is expected in [0.0, 1.0].
// Zero mutes the element; any other value unmutes it. The underlying volume
// is set regardless of the mute flag.
func (c *Controller) SetVolume(volume float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.element.SetMuted(volume == 0.0)
	c.element.SetVolume(volume)
	return nil
}

// SetPlaybackSpeed sets the playback rate. speed must be strictly positive;
// a non-positive value is a programming error and panics.
func (c *Controller) SetPlaybackSpeed(speed float64) error {
	if err := c.guard(); err != nil {
		return err
	}
	if speed <= 0 {
		panic("player: playback speed must be positive")
	}
	c.element.SetPlaybackRate(speed)
	return nil
}

// SeekTo moves the playhead to the given position.
func (c *Controller) SeekTo(position time.Duration) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.element.SetCurrentTime(float64(position.Milliseconds()) / 1000.0)
	return nil
}

// Position returns the playhead position rounded to the nearest millisecond.
// As a side effect it emits a buffering update first; position pollers are
// assumed to want fresh buffering information too.
func (c *Controller) Position() (time.Duration, error) {
	if err := c.guard(); err != nil {
		return 0, err
	}
	if err := c.SendBufferingUpdate(); err != nil {
		return 0, err
	}
	return time.Duration(math.Round(c.element.CurrentTime()*1000.0)) * time.Millisecond, nil
}

// SendBufferingUpdate emits a buffering-update event carrying the element's
// currently buffered ranges at millisecond resolution.
func (c *Controller) SendBufferingUpdate() error {
	if err := c.guard(); err != nil {
		return err
	}
	ranges := c.element.Buffered()
	buffered := make([]DurationRange, 0, len(ranges))
	for _, r := range ranges {
		buffered = append(buffered, DurationRange{
			Start: secondsToDuration(r.Start),
			End:   secondsToDuration(r.End),
		})
	}
	c.stream.send(Event{Kind: EventBufferingUpdate, Buffered: buffered})
	return nil
}

// Dispose detaches every listener exactly once, releases the streaming
// attachment, clears the element source, and forces a reload so the browser
// drops network and buffer resources. No events are delivered afterwards.
// Dispose is idempotent.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	removals := c.removals
	c.removals = nil
	attachment := c.hls
	c.hls = nil
	c.mu.Unlock()

	// Close the stream before touching the element so the forced load()
	// below cannot surface as events.
	c.stream.close()
	for _, remove := range removals {
		remove()
	}
	if attachment != nil {
		attachment.Destroy()
	}
	c.element.RemoveAttribute("src")
	c.element.Load()
}

func (c *Controller) guard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	return nil
}

// secondsToDuration converts element seconds to a millisecond-resolution
// duration, rounding to nearest. Non-finite values (live streams report
// Infinity) map to zero.
func secondsToDuration(seconds float64) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return time.Duration(math.Round(seconds*1000.0)) * time.Millisecond
}
