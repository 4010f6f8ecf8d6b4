package frameasync_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/b97tsk/frameasync"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(buf), stumpy.WithTimeField(``)),
		stumpy.L.WithLevel(logiface.LevelDebug),
	).Logger()
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer

	e := frameasync.New(frameasync.WithLogger(newTestLogger(&buf)))

	frameasync.Spawn[struct{}](e, e.Delay(time.Millisecond))
	frameasync.SpawnFunc(e, func(cx *frameasync.Context) frameasync.Poll[struct{}] {
		panic("boom")
	})

	require.Panics(t, func() { e.Step(0) })
	require.Equal(t, frameasync.Completed, e.Step(time.Millisecond))

	out := buf.String()
	for _, msg := range []string{
		`"msg":"task spawned"`,
		`"msg":"task panicked"`,
		`"msg":"timer fired"`,
		`"msg":"task completed"`,
	} {
		require.Contains(t, out, msg)
	}
	require.Equal(t, 2, strings.Count(out, `"msg":"task spawned"`))
}

func TestLoggingDisabled(t *testing.T) {
	e := frameasync.New(frameasync.WithLogger(nil))
	frameasync.Spawn[struct{}](e, e.NextFrame())
	require.Equal(t, frameasync.RemainTasks, e.Step(0))
	require.Equal(t, frameasync.Completed, e.Step(0))
}
