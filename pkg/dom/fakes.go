package dom

// Fakes for exercising the playback bridge without a browser. Events are
// injected with Fire, mirroring how tests for native bridges inject events
// through the codec path. The fakes model the single-threaded DOM event loop
// and are not safe for concurrent use.

// FakeMediaElement is an in-memory MediaElement.
type FakeMediaElement struct {
	// SrcValue holds the last value passed to SetSource or a "src"
	// SetAttribute call. Cleared by RemoveAttribute("src").
	SrcValue string
	// Attributes holds content attributes set on the element.
	Attributes map[string]string
	// Loads counts Load calls.
	Loads int
	// PlayCalls counts Play calls.
	PlayCalls int
	// Paused reflects Play/Pause calls.
	Paused bool

	Muted  bool
	Volume float64
	Rate   float64
	Loop   bool

	// Time holds the current playback position in seconds.
	Time float64
	// DurationValue is returned by Duration.
	DurationValue float64
	// Width and Height are returned by VideoSize.
	Width, Height int
	// BufferedRanges is returned by Buffered.
	BufferedRanges []TimeRange
	// Err is returned by Error.
	Err *MediaError
	// CanPlay maps MIME type to the CanPlayType answer. Missing entries
	// answer "" (unsupported).
	CanPlay map[string]string

	// PlayRejectName, when non-empty, makes the next Play call reject
	// asynchronously-in-spirit: the onRejected callback fires immediately
	// with PlayRejectName and PlayRejectMessage.
	PlayRejectName    string
	PlayRejectMessage string

	listeners map[string][]*fakeListener
}

type fakeListener struct {
	fn      func()
	removed bool
}

// NewFakeMediaElement returns a fake element with sane defaults.
func NewFakeMediaElement() *FakeMediaElement {
	return &FakeMediaElement{
		Attributes: map[string]string{},
		Paused:     true,
		Volume:     1.0,
		Rate:       1.0,
		CanPlay:    map[string]string{},
		listeners:  map[string][]*fakeListener{},
	}
}

func (e *FakeMediaElement) SetSource(uri string) {
	e.SrcValue = uri
	e.Attributes["src"] = uri
}

func (e *FakeMediaElement) SetAttribute(name, value string) {
	e.Attributes[name] = value
	if name == "src" {
		e.SrcValue = value
	}
}

func (e *FakeMediaElement) RemoveAttribute(name string) {
	delete(e.Attributes, name)
	if name == "src" {
		e.SrcValue = ""
	}
}

func (e *FakeMediaElement) Load() {
	e.Loads++
}

func (e *FakeMediaElement) Play(onRejected func(name, message string)) {
	e.PlayCalls++
	if e.PlayRejectName != "" {
		if onRejected != nil {
			onRejected(e.PlayRejectName, e.PlayRejectMessage)
		}
		return
	}
	e.Paused = false
}

func (e *FakeMediaElement) Pause() {
	e.Paused = true
}

func (e *FakeMediaElement) SetLoop(loop bool)            { e.Loop = loop }
func (e *FakeMediaElement) SetMuted(muted bool)          { e.Muted = muted }
func (e *FakeMediaElement) SetVolume(volume float64)     { e.Volume = volume }
func (e *FakeMediaElement) SetPlaybackRate(rate float64) { e.Rate = rate }

func (e *FakeMediaElement) SetCurrentTime(seconds float64) { e.Time = seconds }
func (e *FakeMediaElement) CurrentTime() float64           { return e.Time }
func (e *FakeMediaElement) Duration() float64              { return e.DurationValue }
func (e *FakeMediaElement) VideoSize() (int, int)          { return e.Width, e.Height }
func (e *FakeMediaElement) Buffered() []TimeRange          { return e.BufferedRanges }
func (e *FakeMediaElement) Error() *MediaError             { return e.Err }

func (e *FakeMediaElement) CanPlayType(mimeType string) string {
	return e.CanPlay[mimeType]
}

func (e *FakeMediaElement) AddEventListener(event string, fn func()) func() {
	l := &fakeListener{fn: fn}
	e.listeners[event] = append(e.listeners[event], l)
	return func() {
		l.removed = true
	}
}

// Fire delivers the named media event to all live listeners.
func (e *FakeMediaElement) Fire(event string) {
	for _, l := range e.listeners[event] {
		if !l.removed {
			l.fn()
		}
	}
}

// ListenerCount returns the number of live listeners for the event.
func (e *FakeMediaElement) ListenerCount(event string) int {
	n := 0
	for _, l := range e.listeners[event] {
		if !l.removed {
			n++
		}
	}
	return n
}

// FakeElementFactory hands out FakeMediaElements and records view IDs.
type FakeElementFactory struct {
	// Created holds every element handed out, in creation order.
	Created []*FakeMediaElement
	// ViewIDs holds the view ID passed for each creation.
	ViewIDs []string
	// Err, when set, fails CreateVideoElement.
	Err error
}

func (f *FakeElementFactory) CreateVideoElement(viewID string) (MediaElement, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	el := NewFakeMediaElement()
	f.Created = append(f.Created, el)
	f.ViewIDs = append(f.ViewIDs, viewID)
	return el, nil
}

// FakeHLSRuntime is an in-memory HLSRuntime.
type FakeHLSRuntime struct {
	// SupportedFlag is returned by Supported.
	SupportedFlag bool
	// NewErr, when set, fails New. Use dom.ErrMissingRuntime to model a
	// page without the hls.js script tag.
	NewErr error
	// Attachments holds every attachment handed out.
	Attachments []*FakeHLSAttachment
}

func (r *FakeHLSRuntime) Supported() bool {
	return r.SupportedFlag
}

func (r *FakeHLSRuntime) New() (HLSAttachment, error) {
	if r.NewErr != nil {
		return nil, r.NewErr
	}
	a := &FakeHLSAttachment{}
	r.Attachments = append(r.Attachments, a)
	return a, nil
}

// FakeHLSAttachment is an in-memory HLSAttachment.
type FakeHLSAttachment struct {
	// Media is the element passed to AttachMedia.
	Media MediaElement
	// Sources holds every URI passed to LoadSource.
	Sources []string
	// Destroyed reports whether Destroy was called.
	Destroyed bool

	mediaAttached func()
	onError       func(details string)
}

func (a *FakeHLSAttachment) AttachMedia(media MediaElement) { a.Media = media }
func (a *FakeHLSAttachment) LoadSource(uri string)          { a.Sources = append(a.Sources, uri) }
func (a *FakeHLSAttachment) OnMediaAttached(fn func())      { a.mediaAttached = fn }
func (a *FakeHLSAttachment) OnError(fn func(string))        { a.onError = fn }
func (a *FakeHLSAttachment) Destroy()                       { a.Destroyed = true }

// FireMediaAttached delivers the MEDIA_ATTACHED event.
func (a *FakeHLSAttachment) FireMediaAttached() {
	if a.mediaAttached != nil {
		a.mediaAttached()
	}
}

// FireError delivers a library ERROR event with the given details.
func (a *FakeHLSAttachment) FireError(details string) {
	if a.onError != nil {
		a.onError(details)
	}
}
