package render

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api/widget/packets"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/widget"
)

const DefaultElapsedText = "Now"

// Renderer turns render instructions into widget views.
//
// SupportsNativeCountdown is decided by the platform: when set, the device
// ticks the countdown itself from a chronometer base. Otherwise the view
// carries the remaining time as text and asks the device to redraw.
type Renderer struct {
	SupportsNativeCountdown bool
	ElapsedText             string
}

func (r Renderer) Render(id widget.InstanceID, instr widget.RenderInstruction) packets.WidgetView {
	view := packets.WidgetView{
		WidgetID:   string(id),
		PrayerName: instr.Label,
		PrayerTime: instr.DisplayTime,
	}

	mode := instr.Mode
	switch mode.Kind {
	case widget.ModeElapsed:
		view.Timer = packets.TimerView{Mode: mode.Kind.String(), Text: r.elapsedText()}
	case widget.ModeActive:
		view.Timer = r.countdown(mode)
	default:
		view.Timer = packets.TimerView{Mode: widget.ModeNone.String()}
	}
	return view
}

func (r Renderer) countdown(mode widget.CountdownMode) packets.TimerView {
	timer := packets.TimerView{
		Mode:            mode.Kind.String(),
		RemainingMillis: mode.RemainingMillis,
	}
	if r.SupportsNativeCountdown {
		timer.ChronometerBase = mode.AnchorMonotonic + mode.RemainingMillis
		timer.CountDown = true
		return timer
	}

	timer.Text = FormatRemaining(mode.RemainingMillis)
	// redraw on the next whole second
	timer.RerenderAfterMillis = mode.RemainingMillis % 1000
	if timer.RerenderAfterMillis == 0 {
		timer.RerenderAfterMillis = 1000
	}
	return timer
}

func (r Renderer) elapsedText() string {
	if r.ElapsedText == "" {
		return DefaultElapsedText
	}
	return r.ElapsedText
}

// FormatRemaining renders a duration as MM:SS, or H:MM:SS from one hour up.
// Partial seconds round up so the display never shows 00:00 early.
func FormatRemaining(ms int64) string {
	if ms <= 0 {
		return "00:00"
	}
	secs := (ms + 999) / 1000
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
