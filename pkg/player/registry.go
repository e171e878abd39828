package player

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/webvideo/pkg/dom"
)

// Registry exclusively owns the mapping from playback handle to controller.
// Handles are monotonically increasing and never reused; disposal is the
// single removal path. Every control call is routed by handle and fails with
// ErrUnknownHandle once the handle is no longer live.
type Registry struct {
	mu      sync.RWMutex
	players map[int64]*Controller
	nextID  atomic.Int64

	elements dom.ElementFactory
	runtime  dom.HLSRuntime
	assets   AssetResolver
}

// NewRegistry creates a registry using the given collaborators. A nil assets
// resolver defaults to a document-relative BaseURLResolver.
func NewRegistry(elements dom.ElementFactory, runtime dom.HLSRuntime, assets AssetResolver) *Registry {
	if assets == nil {
		assets = BaseURLResolver{}
	}
	return &Registry{
		players:  map[int64]*Controller{},
		elements: elements,
		runtime:  runtime,
		assets:   assets,
	}
}

// viewIDFor derives the host-UI view identifier from a playback handle.
func viewIDFor(handle int64) string {
	return fmt.Sprintf("videoPlayer-%d", handle)
}

// Create resolves the source descriptor, constructs a controller around a
// fresh media element, and returns its handle. File sources fail with
// ErrUnsupportedSource before any element is constructed; unresolvable
// sources fail with ErrInvalidSource; a mis-provisioned streaming runtime
// surfaces dom.ErrMissingRuntime.
func (r *Registry) Create(src Source) (int64, error) {
	uri, err := resolveSource(src, r.assets)
	if err != nil {
		return 0, err
	}

	handle := r.nextID.Add(1)
	viewID := viewIDFor(handle)

	element, err := r.elements.CreateVideoElement(viewID)
	if err != nil {
		return 0, err
	}

	controller, err := NewController(element, r.runtime, uri)
	if err != nil {
		return 0, err
	}
	controller.viewID = viewID
	controller.handle = handle

	r.mu.Lock()
	r.players[handle] = controller
	r.mu.Unlock()

	return handle, nil
}

// lookup returns the live controller for a handle.
func (r *Registry) lookup(handle int64) (*Controller, error) {
	r.mu.RLock()
	controller := r.players[handle]
	r.mu.RUnlock()
	if controller == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	return controller, nil
}

// Dispose releases the controller's element and removes the mapping. A
// second call for the same handle fails with ErrUnknownHandle rather than
// silently succeeding.
func (r *Registry) Dispose(handle int64) error {
	r.mu.Lock()
	controller, ok := r.players[handle]
	if ok {
		delete(r.players, handle)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	controller.Dispose()
	return nil
}

// DisposeAll disposes every live instance. Used at session teardown.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	players := r.players
	r.players = map[int64]*Controller{}
	r.mu.Unlock()

	for _, controller := range players {
		controller.Dispose()
	}
}

// Events returns the live event stream for a handle. The stream does not
// replay history to late subscribers.
func (r *Registry) Events(handle int64) (*EventStream, error) {
	controller, err := r.lookup(handle)
	if err != nil {
		return nil, err
	}
	return controller.Events(), nil
}

// ViewID returns the host-UI view identifier for a live handle.
func (r *Registry) ViewID(handle int64) (string, error) {
	controller, err := r.lookup(handle)
	if err != nil {
		return "", err
	}
	return controller.ViewID(), nil
}

// Play forwards to the controller for the handle.
func (r *Registry) Play(handle int64) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.Play()
}

// Pause forwards to the controller for the handle.
func (r *Registry) Pause(handle int64) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.Pause()
}

// SetLooping forwards to the controller for the handle.
func (r *Registry) SetLooping(handle int64, looping bool) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.SetLooping(looping)
}

// SetVolume forwards to the controller for the handle.
func (r *Registry) SetVolume(handle int64, volume float64) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.SetVolume(volume)
}

// SetPlaybackSpeed forwards to the controller for the handle.
func (r *Registry) SetPlaybackSpeed(handle int64, speed float64) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.SetPlaybackSpeed(speed)
}

// SeekTo forwards to the controller for the handle.
func (r *Registry) SeekTo(handle int64, position time.Duration) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.SeekTo(position)
}

// Position forwards to the controller for the handle.
func (r *Registry) Position(handle int64) (time.Duration, error) {
	controller, err := r.lookup(handle)
	if err != nil {
		return 0, err
	}
	return controller.Position()
}

// SendBufferingUpdate forwards to the controller for the handle.
func (r *Registry) SendBufferingUpdate(handle int64) error {
	controller, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return controller.SendBufferingUpdate()
}
