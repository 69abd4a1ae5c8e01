package preview

// Backend drives the media element of one session.
// The controller calls it with the session lock held; implementations must not call back
// into the controller synchronously from these methods.
type Backend interface {
	// Mount loads ref so that it can be played. title is informational.
	Mount(ref, title string) error
	Unmount() error
	Play() error
	Pause() error
	SetCurrentTime(seconds float64) error
	SetMuted(muted bool) error
}

// Events is the backend's way of reporting playback progress. Controller implements it.
type Events interface {
	TimeUpdate(seconds float64)
	CanPlay(duration float64)
	Ended()
}

// Target is the region of an item the pointer entered.
type Target int

const (
	// TargetSurface is the preview surface itself.
	TargetSurface Target = iota

	// TargetMuteControl is the mute button, which never starts a preview.
	TargetMuteControl
)

// Mode selects whether an item can preview at all.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeStatic
)

// Surface is the kind of input the host delivers.
type Surface int

const (
	SurfacePointer Surface = iota
	SurfaceTouch
)
