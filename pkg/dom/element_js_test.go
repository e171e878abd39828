//go:build js && wasm

package dom

import (
	"syscall/js"
	"testing"
	"time"
)

// playElement builds a minimal element whose play() returns the given value.
func playElement(t *testing.T, result js.Value) *jsMediaElement {
	t.Helper()
	obj := js.Global().Get("Object").New()
	fn := js.FuncOf(func(this js.Value, args []js.Value) any { return result })
	t.Cleanup(fn.Release)
	obj.Set("play", fn)
	return &jsMediaElement{v: obj}
}

func TestJSMediaElement_PlayRejectionReportsNameAndMessage(t *testing.T) {
	errObj := js.Global().Get("Error").New("play() was interrupted")
	errObj.Set("name", "NotAllowedError")
	el := playElement(t, js.Global().Get("Promise").Call("reject", errObj))

	got := make(chan [2]string, 1)
	el.Play(func(name, message string) { got <- [2]string{name, message} })

	select {
	case r := <-got:
		if r[0] != "NotAllowedError" {
			t.Errorf("name: got %q, want NotAllowedError", r[0])
		}
		if r[1] != "play() was interrupted" {
			t.Errorf("message: got %q, want the rejection's message", r[1])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("rejection callback never fired")
	}
}

func TestJSMediaElement_PlayResolutionDoesNotInvokeCallback(t *testing.T) {
	el := playElement(t, js.Global().Get("Promise").Call("resolve"))

	rejected := make(chan struct{}, 1)
	el.Play(func(string, string) { rejected <- struct{}{} })

	// Yield to the event loop so the microtask queue drains; a fulfilled
	// promise must settle the handler pair without invoking onRejected.
	select {
	case <-rejected:
		t.Fatal("resolved play must not invoke the rejection callback")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestJSMediaElement_PlayWithoutPromise(t *testing.T) {
	// Older engines return undefined from play(); Play must not touch it.
	el := playElement(t, js.Undefined())
	el.Play(nil)
}
