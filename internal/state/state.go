package state

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan-widget/internal/widget"
)

// widget data keys written by the app
const (
	KeyPrayerName       = "prayer_name"
	KeyPrayerTime       = "prayer_time"
	KeyPrayerTimeMillis = "prayer_time_millis"
)

// Source is a key/value store holding the persisted widget data.
type Source interface {
	Lookup(ctx context.Context, key string) (value string, ok bool, err error)
}

// Reader turns a Source into total reads: anything that is missing,
// unreadable or malformed comes back as the caller's default.
type Reader struct {
	src Source
}

func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

func (r *Reader) String(ctx context.Context, key, def string) string {
	v, ok := r.lookup(ctx, key)
	if !ok {
		return def
	}
	return v
}

func (r *Reader) Int64(ctx context.Context, key string, def int64) int64 {
	v, ok := r.lookup(ctx, key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("value", v).Msg("widget data value is not an integer, using default")
		return def
	}
	return n
}

func (r *Reader) lookup(ctx context.Context, key string) (string, bool) {
	if r == nil || r.src == nil {
		return "", false
	}
	v, ok, err := r.src.Lookup(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read widget data, using default")
		return "", false
	}
	return v, ok
}

// Load reads a full snapshot. It never fails.
func Load(ctx context.Context, r *Reader) widget.PrayerState {
	return widget.PrayerState{
		Label:             r.String(ctx, KeyPrayerName, widget.DefaultLabel),
		DisplayTime:       r.String(ctx, KeyPrayerTime, widget.DefaultDisplayTime),
		TargetEpochMillis: r.Int64(ctx, KeyPrayerTimeMillis, 0),
	}
}

// MapSource keeps widget data in memory.
type MapSource struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMapSource(data map[string]string) *MapSource {
	m := &MapSource{data: make(map[string]string, len(data))}
	for k, v := range data {
		m.data[k] = v
	}
	return m
}

func (m *MapSource) Lookup(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MapSource) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
