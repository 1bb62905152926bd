package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/funtimes-santatrack/internal/diagnostics"
)

func newTestMessenger(t *testing.T, g Generator, sink diag.Sink) *Messenger {
	t.Helper()
	m, err := NewMessenger(g, Options{Recipient: PromptData{Name: "Иван", Age: 9}, Timeout: 50 * time.Millisecond, Diag: sink})
	require.NoError(t, err)
	return m
}

func TestPromptIsPersonalised(t *testing.T) {
	var got string
	m := newTestMessenger(t, GeneratorFunc(func(_ context.Context, p string) (string, error) {
		got = p
		return "ok", nil
	}), nil)

	r := m.Ask(context.Background())
	assert.Equal(t, FromService, r.Source)
	assert.Equal(t, "ok", r.Text)
	assert.Equal(t, m.Prompt(), got)
	assert.Contains(t, got, "по имени Иван, ему 9 лет")
	assert.Contains(t, got, "Спецагент Иван!")
}

func TestErrorUsesFallbackInRotation(t *testing.T) {
	var diags []diag.Diagnostic
	boom := errors.New("network down")
	m := newTestMessenger(t, Offline{Reason: boom}, diag.SinkFunc(func(d diag.Diagnostic) { diags = append(diags, d) }))

	first := m.Ask(context.Background())
	second := m.Ask(context.Background())

	assert.Equal(t, FromFallback, first.Source)
	assert.ErrorIs(t, first.Err, boom)
	assert.True(t, strings.HasPrefix(first.Text, "Привет, Иван!"))
	assert.NotEqual(t, first.Text, second.Text)
	assert.NotContains(t, first.Text, "{{")
	require.Len(t, diags, 2)
	assert.Equal(t, diag.AssistantFallback, diags[0].Code)
}

func TestEmptyReply(t *testing.T) {
	m := newTestMessenger(t, GeneratorFunc(func(context.Context, string) (string, error) { return "  \n", nil }), nil)
	r := m.Ask(context.Background())
	assert.Equal(t, FromEmpty, r.Source)
	assert.Equal(t, "Эльфы говорят, что сани уже в гиперпрыжке. Держись, Иван! 🚀✨", r.Text)
}

func TestTimeoutFallsBack(t *testing.T) {
	m := newTestMessenger(t, GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), nil)
	r := m.Ask(context.Background())
	assert.Equal(t, FromFallback, r.Source)
	assert.ErrorIs(t, r.Err, context.DeadlineExceeded)
	assert.NotEmpty(t, r.Text)
}

func TestPanicFallsBack(t *testing.T) {
	m := newTestMessenger(t, GeneratorFunc(func(context.Context, string) (string, error) { panic("malformed") }), nil)
	r := m.Ask(context.Background())
	assert.Equal(t, FromFallback, r.Source)
	assert.ErrorContains(t, r.Err, "malformed")
}

func TestBadPromptTemplate(t *testing.T) {
	_, err := NewMessenger(Offline{}, Options{Prompt: "{{.Nope"})
	assert.Error(t, err)
}

func TestNewGeminiWithoutKey(t *testing.T) {
	t.Setenv("SANTATRACK_TEST_KEY", "")
	_, err := NewGemini(context.Background(), "m", "SANTATRACK_TEST_KEY")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
