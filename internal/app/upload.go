package app

// uploadAction is what reaches the GPU on a given frame.
type uploadAction int

const (
	uploadNone uploadAction = iota
	uploadBase
	uploadDisplaced
)

// uploadState decides per frame whether the renderer receives the displaced
// scratch buffer, the controller's base buffer, or nothing. Releasing pointer
// focus must push one base upload even when the base itself has not changed,
// otherwise the last displaced frame stays on screen.
type uploadState struct {
	dirty        bool
	wasDisplaced bool
}

// MarkDirty flags the base buffer as changed since the last upload.
func (u *uploadState) MarkDirty() {
	u.dirty = true
}

// Decide consumes this frame's pointer activity and returns the action.
func (u *uploadState) Decide(pointerActive bool) uploadAction {
	if pointerActive {
		u.wasDisplaced = true
		u.dirty = false
		return uploadDisplaced
	}
	if u.wasDisplaced || u.dirty {
		u.wasDisplaced = false
		u.dirty = false
		return uploadBase
	}
	return uploadNone
}
