package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/widget"
)

type brokenSource struct{}

func (brokenSource) Lookup(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestLoad_Defaults(t *testing.T) {
	ctx := context.Background()

	got := Load(ctx, NewReader(NewMapSource(nil)))

	assert.Equal(t, widget.DefaultState(), got)
}

func TestLoad_ReadsAllKeys(t *testing.T) {
	ctx := context.Background()
	src := NewMapSource(map[string]string{
		KeyPrayerName:       "Asr",
		KeyPrayerTime:       "15:45",
		KeyPrayerTimeMillis: "1760000000000",
	})

	got := Load(ctx, NewReader(src))

	assert.Equal(t, widget.PrayerState{
		Label:             "Asr",
		DisplayTime:       "15:45",
		TargetEpochMillis: 1760000000000,
	}, got)
}

func TestLoad_BackendErrorFallsBackToDefaults(t *testing.T) {
	got := Load(context.Background(), NewReader(brokenSource{}))

	assert.Equal(t, widget.DefaultState(), got)
}

func TestLoad_NilReader(t *testing.T) {
	assert.Equal(t, widget.DefaultState(), Load(context.Background(), nil))
}

func TestReader_Int64(t *testing.T) {
	ctx := context.Background()
	src := NewMapSource(map[string]string{
		"good":     "42",
		"padded":   " 7 ",
		"negative": "-3",
		"junk":     "soon",
	})
	r := NewReader(src)

	assert.Equal(t, int64(42), r.Int64(ctx, "good", 0))
	assert.Equal(t, int64(7), r.Int64(ctx, "padded", 0))
	assert.Equal(t, int64(-3), r.Int64(ctx, "negative", 0))
	assert.Equal(t, int64(9), r.Int64(ctx, "junk", 9))
	assert.Equal(t, int64(5), r.Int64(ctx, "missing", 5))
}

func TestReader_StringKeepsEmptyValue(t *testing.T) {
	src := NewMapSource(map[string]string{KeyPrayerName: ""})

	assert.Equal(t, "", NewReader(src).String(context.Background(), KeyPrayerName, "x"))
}

func TestMapSource_Set(t *testing.T) {
	src := NewMapSource(nil)
	src.Set(KeyPrayerTime, "05:12")

	v, ok, err := src.Lookup(context.Background(), KeyPrayerTime)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "05:12", v)
}
