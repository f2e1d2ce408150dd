package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	events []*sentry.Event
}

func (t *recordingTransport) Flush(_ time.Duration) bool              { return true }
func (t *recordingTransport) FlushWithContext(_ context.Context) bool { return true }
func (t *recordingTransport) Configure(_ sentry.ClientOptions)        {}
func (t *recordingTransport) SendEvent(event *sentry.Event)           { t.events = append(t.events, event) }
func (t *recordingTransport) Close()                                  {}

func newTestHub(t *testing.T) (*sentry.Hub, *recordingTransport) {
	t.Helper()

	transport := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)

	return sentry.NewHub(client, sentry.NewScope()), transport
}

func TestInit_DisabledWithoutDSN(t *testing.T) {
	flush, err := Init(Config{})
	assert.NoError(t, err)
	assert.Nil(t, flush)
}

func TestCaptureError_UsesHubFromContext(t *testing.T) {
	hub, transport := newTestHub(t)
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	CaptureError(ctx, errors.New("insert failed"), map[string]interface{}{"code": "XX000"})

	require.Len(t, transport.events, 1)
	assert.Equal(t, "XX000", transport.events[0].Extra["code"])
}

func TestCaptureError_NilErrorIsIgnored(t *testing.T) {
	hub, transport := newTestHub(t)
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	CaptureError(ctx, nil, nil)

	assert.Empty(t, transport.events)
}

func TestWithRequestHub_ReusesExistingHub(t *testing.T) {
	hub, _ := newTestHub(t)
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	_, got := WithRequestHub(ctx)
	assert.Same(t, hub, got)

	_, fresh := WithRequestHub(context.Background())
	assert.NotNil(t, fresh)
}
