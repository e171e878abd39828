//go:build js && wasm

package dom

import (
	"syscall/js"
)

// jsHLSRuntime binds HLSRuntime to the global Hls object from hls.js.
type jsHLSRuntime struct{}

// BrowserHLS returns the hls.js runtime loaded into the page, if any.
func BrowserHLS() HLSRuntime {
	return jsHLSRuntime{}
}

func hlsGlobal() js.Value {
	return js.Global().Get("Hls")
}

func (jsHLSRuntime) Supported() bool {
	h := hlsGlobal()
	if h.IsUndefined() || h.IsNull() {
		return false
	}
	supported := h.Call("isSupported")
	return supported.Type() == js.TypeBoolean && supported.Bool()
}

func (jsHLSRuntime) New() (HLSAttachment, error) {
	h := hlsGlobal()
	if h.IsUndefined() || h.IsNull() {
		return nil, ErrMissingRuntime
	}
	return &jsHLSAttachment{v: h.New()}, nil
}

// jsHLSAttachment is one Hls instance bound to a media element.
type jsHLSAttachment struct {
	v     js.Value
	funcs []js.Func
}

func (a *jsHLSAttachment) AttachMedia(media MediaElement) {
	el, ok := media.(*jsMediaElement)
	if !ok {
		return
	}
	a.v.Call("attachMedia", el.v)
}

func (a *jsHLSAttachment) LoadSource(uri string) {
	a.v.Call("loadSource", uri)
}

func (a *jsHLSAttachment) on(event string, fn js.Func) {
	a.funcs = append(a.funcs, fn)
	a.v.Call("on", hlsGlobal().Get("Events").Get(event), fn)
}

func (a *jsHLSAttachment) OnMediaAttached(fn func()) {
	a.on("MEDIA_ATTACHED", js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	}))
}

func (a *jsHLSAttachment) OnError(fn func(details string)) {
	a.on("ERROR", js.FuncOf(func(this js.Value, args []js.Value) any {
		details := ""
		if len(args) > 1 && args[1].Type() == js.TypeObject {
			if d := args[1].Get("details"); d.Type() == js.TypeString {
				details = d.String()
			}
		}
		fn(details)
		return nil
	}))
}

func (a *jsHLSAttachment) Destroy() {
	a.v.Call("destroy")
	for _, fn := range a.funcs {
		fn.Release()
	}
	a.funcs = nil
}
