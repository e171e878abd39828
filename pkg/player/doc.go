// Package player bridges browser video playback to an application-facing
// event stream. A Registry maps opaque integer handles to Controllers; each
// Controller owns one media element, picks a delivery strategy (native
// playback or hls.js-assisted streaming) once at construction, and normalizes
// element and library signals into one ordered sequence of initialized,
// buffering-update, and completed events plus out-of-band playback errors.
//
// The package contains no DOM code of its own; it drives the collaborator
// interfaces in package dom, which makes the full decision logic testable
// off-browser with the dom fakes.
package player
