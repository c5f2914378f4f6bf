package widget

// defaults used when the persisted widget data has no value for a key
const (
	DefaultLabel       = "Waiting..."
	DefaultDisplayTime = "--:--"
)

// PrayerState is the snapshot of the persisted widget data.
// TargetEpochMillis <= 0 means no target is set.
type PrayerState struct {
	Label             string `json:"prayer_name"`
	DisplayTime       string `json:"prayer_time"`
	TargetEpochMillis int64  `json:"prayer_time_millis"`
}

// DefaultState is what a widget shows before the app has written anything.
func DefaultState() PrayerState {
	return PrayerState{
		Label:       DefaultLabel,
		DisplayTime: DefaultDisplayTime,
	}
}

// InstanceID identifies one placed widget. It carries no meaning beyond identity.
type InstanceID string

type ModeKind int

const (
	ModeNone ModeKind = iota
	ModeElapsed
	ModeActive
)

func (k ModeKind) String() string {
	switch k {
	case ModeElapsed:
		return "elapsed"
	case ModeActive:
		return "countdown"
	default:
		return "none"
	}
}

// CountdownMode says how the timer field is drawn.
// AnchorMonotonic and RemainingMillis are only set for ModeActive.
type CountdownMode struct {
	Kind            ModeKind
	AnchorMonotonic int64
	RemainingMillis int64
}

type RenderInstruction struct {
	Label       string
	DisplayTime string
	Mode        CountdownMode
}

// ResolveMode decides the countdown mode from the target, the wall clock and a
// monotonic reading taken at the same moment. The live countdown is anchored
// on the monotonic reading so wall-clock jumps between refreshes do not move it.
func ResolveMode(targetEpochMillis, nowMillis, nowMonotonic int64) CountdownMode {
	if targetEpochMillis <= 0 {
		return CountdownMode{Kind: ModeNone}
	}

	diff := targetEpochMillis - nowMillis
	if diff <= 0 {
		return CountdownMode{Kind: ModeElapsed}
	}

	return CountdownMode{
		Kind:            ModeActive,
		AnchorMonotonic: nowMonotonic,
		RemainingMillis: diff,
	}
}

// Resolve builds one instruction per instance id. Every instance gets the same
// instruction; the result is never nil and has exactly the given ids as keys.
func Resolve(state PrayerState, ids []InstanceID, nowMillis, nowMonotonic int64) map[InstanceID]RenderInstruction {
	out := make(map[InstanceID]RenderInstruction, len(ids))
	if len(ids) == 0 {
		return out
	}

	instr := RenderInstruction{
		Label:       state.Label,
		DisplayTime: state.DisplayTime,
		Mode:        ResolveMode(state.TargetEpochMillis, nowMillis, nowMonotonic),
	}
	for _, id := range ids {
		out[id] = instr
	}
	return out
}

// NewInstanceSet turns platform-supplied ids into a set: blanks are dropped,
// duplicates collapse, first-seen order is kept.
func NewInstanceSet(ids ...string) []InstanceID {
	seen := make(map[string]struct{}, len(ids))
	out := make([]InstanceID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, InstanceID(id))
	}
	return out
}
