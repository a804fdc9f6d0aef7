package audit

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Trail is the best-effort append-only file of raw broker records, one
// line per arrival: timestamp | topic | payload. It exists alongside the
// structured log stream as the raw event record.
type Trail struct {
	path  string
	clock clockwork.Clock
	mu    sync.Mutex
}

func New(path string, clock clockwork.Clock) *Trail {
	return &Trail{path: path, clock: clock}
}

func (t *Trail) Append(topic string, payload []byte) error {
	line := fmt.Sprintf("%s | %s | %s\n",
		t.clock.Now().UTC().Format(time.RFC3339Nano), topic, payload)

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line)
	return err
}
