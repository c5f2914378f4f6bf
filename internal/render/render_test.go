package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/http/api/widget/packets"
	"github.com/Nixie-Tech-LLC/athan-widget/internal/widget"
)

func instruction(mode widget.CountdownMode) widget.RenderInstruction {
	return widget.RenderInstruction{Label: "Asr", DisplayTime: "15:45", Mode: mode}
}

func TestRender_None(t *testing.T) {
	got := Renderer{}.Render("w1", instruction(widget.CountdownMode{Kind: widget.ModeNone}))

	assert.Equal(t, packets.WidgetView{
		WidgetID:   "w1",
		PrayerName: "Asr",
		PrayerTime: "15:45",
		Timer:      packets.TimerView{Mode: "none", Text: ""},
	}, got)
}

func TestRender_Elapsed(t *testing.T) {
	instr := instruction(widget.CountdownMode{Kind: widget.ModeElapsed})

	assert.Equal(t, packets.TimerView{Mode: "elapsed", Text: "Now"}, Renderer{}.Render("w1", instr).Timer)
	assert.Equal(t, packets.TimerView{Mode: "elapsed", Text: "الآن"}, Renderer{ElapsedText: "الآن"}.Render("w1", instr).Timer)
}

func TestRender_NativeCountdown(t *testing.T) {
	r := Renderer{SupportsNativeCountdown: true}
	instr := instruction(widget.CountdownMode{Kind: widget.ModeActive, AnchorMonotonic: 5000, RemainingMillis: 600000})

	assert.Equal(t, packets.TimerView{
		Mode:            "countdown",
		RemainingMillis: 600000,
		ChronometerBase: 605000,
		CountDown:       true,
	}, r.Render("w1", instr).Timer)
}

func TestRender_FallbackCountdown(t *testing.T) {
	r := Renderer{SupportsNativeCountdown: false}
	instr := instruction(widget.CountdownMode{Kind: widget.ModeActive, AnchorMonotonic: 5000, RemainingMillis: 61500})

	assert.Equal(t, packets.TimerView{
		Mode:                "countdown",
		Text:                "01:02",
		RemainingMillis:     61500,
		RerenderAfterMillis: 500,
	}, r.Render("w1", instr).Timer)
}

func TestRender_FallbackCountdownOnWholeSecond(t *testing.T) {
	instr := instruction(widget.CountdownMode{Kind: widget.ModeActive, RemainingMillis: 600000})

	timer := Renderer{}.Render("w1", instr).Timer
	assert.Equal(t, "10:00", timer.Text)
	assert.Equal(t, int64(1000), timer.RerenderAfterMillis)
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{-1, "00:00"},
		{0, "00:00"},
		{1, "00:01"},
		{1000, "00:01"},
		{59_001, "01:00"},
		{600_000, "10:00"},
		{3_599_000, "59:59"},
		{3_600_000, "1:00:00"},
		{5_025_000, "1:23:45"},
		{36_000_000, "10:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRemaining(tt.ms), "ms=%d", tt.ms)
	}
}
