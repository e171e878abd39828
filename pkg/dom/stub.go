//go:build !(js && wasm)

package dom

// unavailableFactory stands in for the browser factory on non-wasm builds so
// that packages importing dom still compile for tests and tooling.
type unavailableFactory struct{}

// NewBrowserFactory returns an ElementFactory whose CreateVideoElement always
// fails with ErrUnavailable. The real factory exists only on js/wasm.
func NewBrowserFactory() ElementFactory {
	return unavailableFactory{}
}

func (unavailableFactory) CreateVideoElement(string) (MediaElement, error) {
	return nil, ErrUnavailable
}

// unavailableRuntime reports hls.js as unusable on non-wasm builds.
type unavailableRuntime struct{}

// BrowserHLS returns an HLSRuntime that is never supported. The real runtime
// binding exists only on js/wasm.
func BrowserHLS() HLSRuntime {
	return unavailableRuntime{}
}

func (unavailableRuntime) Supported() bool {
	return false
}

func (unavailableRuntime) New() (HLSAttachment, error) {
	return nil, ErrUnavailable
}
