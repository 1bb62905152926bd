package oracle

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
)

// Source says where a reply came from.
type Source string

const (
	FromService  Source = "service"
	FromEmpty    Source = "empty"
	FromFallback Source = "fallback"
)

// Reply is what the page shows. Err is kept for logging only.
type Reply struct {
	Text   string        `json:"text"`
	Source Source        `json:"source"`
	Took   time.Duration `json:"took"`
	Err    error         `json:"-"`
}

// Messenger asks a Generator for the personalised message and never lets a
// failure reach the caller.
type Messenger struct {
	gen     Generator
	prompt  string
	empty   string
	falls   []string
	timeout time.Duration
	diag    diag.Sink

	mu   sync.Mutex
	next int
}

type Options struct {
	Recipient PromptData
	Prompt    string // template; "" uses DefaultPrompt
	Timeout   time.Duration
	Diag      diag.Sink
}

func NewMessenger(gen Generator, o Options) (*Messenger, error) {
	src := o.Prompt
	if src == "" {
		src = DefaultPrompt
	}
	prompt, err := render("prompt", src, o.Recipient)
	if err != nil {
		return nil, err
	}
	empty, err := render("empty", EmptyReplyMessage, o.Recipient)
	if err != nil {
		return nil, err
	}
	falls := make([]string, len(FallbackMessages))
	for i, f := range FallbackMessages {
		if falls[i], err = render(fmt.Sprintf("fallback-%d", i), f, o.Recipient); err != nil {
			return nil, err
		}
	}
	sink := o.Diag
	if sink == nil {
		sink = diag.Discard
	}
	return &Messenger{gen: gen, prompt: prompt, empty: empty, falls: falls, timeout: o.Timeout, diag: sink}, nil
}

// Prompt is the rendered prompt sent to the service.
func (m *Messenger) Prompt() string { return m.prompt }

// Ask fetches a message. Errors, timeouts, panics and empty replies all
// resolve to a fixed message.
func (m *Messenger) Ask(ctx context.Context) (r Reply) {
	start := time.Now()
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			r = m.fallback(fmt.Errorf("oracle: generator panic: %v", p))
		}
		r.Took = time.Since(start)
	}()

	text, err := m.gen.Generate(ctx, m.prompt)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return m.fallback(err)
	}
	if strings.TrimSpace(text) == "" {
		log.Warn().Msg("assistant returned empty text")
		m.diag.Push(diag.Diagnostic{Severity: diag.Info, Code: diag.AssistantEmpty, Summary: "Assistant returned no text"})
		return Reply{Text: m.empty, Source: FromEmpty}
	}
	return Reply{Text: text, Source: FromService}
}

func (m *Messenger) fallback(err error) Reply {
	m.mu.Lock()
	i := m.next % len(m.falls)
	m.next++
	m.mu.Unlock()

	log.Warn().Err(err).Int("fallback", i).Msg("assistant call failed; using fallback message")
	m.diag.Push(diag.Diagnostic{
		Severity:     diag.Warn,
		Code:         diag.AssistantFallback,
		Summary:      "Assistant unavailable, fallback message shown",
		Detail:       err.Error(),
		LikelyCauses: []string{"no network", "missing api key", "timeout"},
		Evidence:     map[string]any{"fallback": i},
	})
	return Reply{Text: m.falls[i], Source: FromFallback, Err: err}
}
