//go:build js && wasm

package dom

import (
	"syscall/js"
)

// jsMediaElement binds MediaElement to a real HTMLVideoElement.
type jsMediaElement struct {
	v js.Value
}

// browserFactory creates <video> elements in the page document.
type browserFactory struct{}

// NewBrowserFactory returns an ElementFactory backed by the page document.
func NewBrowserFactory() ElementFactory {
	return browserFactory{}
}

func (browserFactory) CreateVideoElement(viewID string) (MediaElement, error) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return nil, ErrUnavailable
	}
	v := doc.Call("createElement", "video")
	v.Set("id", viewID)
	v.Set("autoplay", false)
	v.Set("controls", false)
	return &jsMediaElement{v: v}, nil
}

func (e *jsMediaElement) SetSource(uri string) {
	e.v.Set("src", uri)
}

func (e *jsMediaElement) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *jsMediaElement) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e *jsMediaElement) Load() {
	e.v.Call("load")
}

func (e *jsMediaElement) Play(onRejected func(name, message string)) {
	p := e.v.Call("play")
	if p.Type() != js.TypeObject || p.Get("then").IsUndefined() {
		return
	}
	// The promise settles exactly once, so whichever callback runs releases
	// both funcs.
	var onResolved, onFailed js.Func
	release := func() {
		onResolved.Release()
		onFailed.Release()
	}
	onResolved = js.FuncOf(func(this js.Value, args []js.Value) any {
		release()
		return nil
	})
	onFailed = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer release()
		if onRejected == nil {
			return nil
		}
		name, message := "", ""
		if len(args) > 0 && args[0].Type() == js.TypeObject {
			if n := args[0].Get("name"); n.Type() == js.TypeString {
				name = n.String()
			}
			if m := args[0].Get("message"); m.Type() == js.TypeString {
				message = m.String()
			}
		}
		onRejected(name, message)
		return nil
	})
	p.Call("then", onResolved, onFailed)
}

func (e *jsMediaElement) Pause() {
	e.v.Call("pause")
}

func (e *jsMediaElement) SetLoop(loop bool) {
	e.v.Set("loop", loop)
}

func (e *jsMediaElement) SetMuted(muted bool) {
	e.v.Set("muted", muted)
}

func (e *jsMediaElement) SetVolume(volume float64) {
	e.v.Set("volume", volume)
}

func (e *jsMediaElement) SetPlaybackRate(rate float64) {
	e.v.Set("playbackRate", rate)
}

func (e *jsMediaElement) SetCurrentTime(seconds float64) {
	e.v.Set("currentTime", seconds)
}

func (e *jsMediaElement) CurrentTime() float64 {
	return e.v.Get("currentTime").Float()
}

func (e *jsMediaElement) Duration() float64 {
	return e.v.Get("duration").Float()
}

func (e *jsMediaElement) VideoSize() (int, int) {
	return e.v.Get("videoWidth").Int(), e.v.Get("videoHeight").Int()
}

func (e *jsMediaElement) Buffered() []TimeRange {
	buffered := e.v.Get("buffered")
	n := buffered.Get("length").Int()
	ranges := make([]TimeRange, 0, n)
	for i := 0; i < n; i++ {
		ranges = append(ranges, TimeRange{
			Start: buffered.Call("start", i).Float(),
			End:   buffered.Call("end", i).Float(),
		})
	}
	return ranges
}

func (e *jsMediaElement) Error() *MediaError {
	errVal := e.v.Get("error")
	if errVal.IsNull() || errVal.IsUndefined() {
		return nil
	}
	message := ""
	if m := errVal.Get("message"); m.Type() == js.TypeString {
		message = m.String()
	}
	return &MediaError{
		Code:    errVal.Get("code").Int(),
		Message: message,
	}
}

func (e *jsMediaElement) CanPlayType(mimeType string) string {
	return e.v.Call("canPlayType", mimeType).String()
}

func (e *jsMediaElement) AddEventListener(event string, fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	e.v.Call("addEventListener", event, cb)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		e.v.Call("removeEventListener", event, cb)
		cb.Release()
	}
}
