package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bft-labs/votebox/internal/domain"
	"github.com/bft-labs/votebox/internal/ports"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.Info("vote cast",
		ports.Any("voter", domain.Voter("Claude")),
		ports.Any("outcome", domain.OutcomeAccepted),
		ports.Int("ballots", 3),
		ports.Err(errors.New("boom")))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}

	checks := map[string]interface{}{
		"level":   "info",
		"message": "vote cast",
		"voter":   "Claude",
		"outcome": "accepted",
		"ballots": float64(3),
		"error":   "boom",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s = %v, want %v", k, entry[k], want)
		}
	}
}

func TestZerologAdapter_DisabledLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	adapter.Debug("hidden", ports.String("k", "v"))

	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) is not a NoopLogger")
	}
	z := NewZerologAdapter(zerolog.Nop())
	if OrNoop(z) != ports.Logger(z) {
		t.Error("OrNoop dropped a non-nil logger")
	}
}
