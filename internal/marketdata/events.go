package marketdata

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"riskdesk/internal/domain"

	"github.com/oklog/ulid/v2"
)

// EventLog is the in-memory system history: trade actions, API changes,
// system notices and alerts. Entries get ULID identifiers so they stay
// lexicographically ordered even within the same millisecond.
type EventLog struct {
	mu      sync.Mutex
	entries []domain.JournalEvent
	entropy io.Reader
	now     func() time.Time
}

// NewEventLog builds an empty event log.
func NewEventLog() *EventLog {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &EventLog{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:     time.Now,
	}
}

// SeededEventLog returns an event log pre-filled with the standard demo
// entries shown before any real activity happens.
func SeededEventLog() *EventLog {
	l := NewEventLog()
	seed := []struct {
		kind domain.EventKind
		desc string
	}{
		{domain.EventTrade, "BUY BTC/USDT @ 65,123.45"},
		{domain.EventAlert, "Signal detected: Doble Suelo en ETH/USDT"},
		{domain.EventSystem, "System reboot initiated for maintenance."},
		{domain.EventAPI, "Binance API key updated successfully."},
		{domain.EventTrade, "SELL SOL/USDT @ 155.80"},
		{domain.EventAlert, "Liquidity warning for ADA/USDT."},
	}
	for _, e := range seed {
		l.Append(e.kind, e.desc)
	}
	return l
}

// Append records a new event and returns it.
func (l *EventLog) Append(kind domain.EventKind, description string) domain.JournalEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), l.entropy)
	if err != nil {
		// Only possible if time goes backwards or entropy fails.
		id = ulid.Make()
	}
	event := domain.JournalEvent{
		ID:          id.String(),
		Timestamp:   now,
		Kind:        kind,
		Description: description,
	}
	l.entries = append(l.entries, event)
	return event
}

// Events returns entries filtered by kind (empty matches all) and by a
// case-insensitive description substring, sorted by timestamp. Descending is
// the default display order.
func (l *EventLog) Events(kind domain.EventKind, search string, order SortOrder) []domain.JournalEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	needle := strings.ToLower(search)
	out := make([]domain.JournalEvent, 0, len(l.entries))
	for _, e := range l.entries {
		if kind != "" && e.Kind != kind {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.Description), needle) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == Asc {
			return out[i].ID < out[j].ID
		}
		return out[j].ID < out[i].ID
	})
	return out
}
