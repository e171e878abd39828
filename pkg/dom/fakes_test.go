package dom

import "testing"

func TestFakeMediaElement_ListenerRemovalIsIdempotent(t *testing.T) {
	el := NewFakeMediaElement()
	var fired int
	remove := el.AddEventListener("ended", func() { fired++ })

	el.Fire("ended")
	remove()
	remove()
	el.Fire("ended")

	if fired != 1 {
		t.Errorf("fired: got %d, want 1", fired)
	}
	if el.ListenerCount("ended") != 0 {
		t.Error("removed listener should not be counted")
	}
}

func TestFakeMediaElement_CanPlayTypeDefaultsUnsupported(t *testing.T) {
	el := NewFakeMediaElement()
	if got := el.CanPlayType("video/mp4"); got != "" {
		t.Errorf("CanPlayType: got %q, want \"\"", got)
	}
	el.CanPlay["video/mp4"] = "probably"
	if got := el.CanPlayType("video/mp4"); got != "probably" {
		t.Errorf("CanPlayType: got %q, want probably", got)
	}
}

func TestFakeMediaElement_SrcAttributeTracking(t *testing.T) {
	el := NewFakeMediaElement()
	el.SetSource("https://e.com/v.mp4")
	if el.Attributes["src"] != "https://e.com/v.mp4" {
		t.Error("SetSource should reflect into the src attribute")
	}
	el.RemoveAttribute("src")
	if el.SrcValue != "" {
		t.Error("RemoveAttribute(src) should clear SrcValue")
	}
}

func TestFakeHLSRuntime_AttachmentEvents(t *testing.T) {
	r := &FakeHLSRuntime{SupportedFlag: true}
	att, err := r.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var attached bool
	var details string
	att.OnMediaAttached(func() { attached = true })
	att.OnError(func(d string) { details = d })

	fake := r.Attachments[0]
	fake.FireMediaAttached()
	fake.FireError("manifestLoadError")

	if !attached {
		t.Error("media attached callback should fire")
	}
	if details != "manifestLoadError" {
		t.Errorf("error details: got %q", details)
	}
}
