package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migres/app/config"
)

type testApp struct {
	*App
	stdout, stderr *safeBuffer
}

func newTestApp(ctx context.Context, opts ...Option) (*testApp, error) {
	stdout, stderr := newSafeBuffer(), newSafeBuffer()

	opts = append([]Option{
		WithContext(ctx),
		WithFDs(stdout, stderr),
		WithFS(memoryfs.New()),
		WithLogger(false, false),
	}, opts...)
	app, err := New("migres", "/config.json", opts...)
	if err != nil {
		return nil, err
	}

	return &testApp{App: app, stdout: stdout, stderr: stderr}, nil
}

func (ta *testApp) Run(args ...string) error {
	ta.stdout.Reset()
	ta.stderr.Reset()

	return ta.App.Run(args)
}

// writeConfig writes cfg to the configuration file path used by test apps.
func (ta *testApp) writeConfig(cfg config.Config) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return vfs.WriteFile(ta.ctx.FS, "/config.json", cfgJSON, 0o644)
}

// writeFiles creates files on the app filesystem. The content of each file is
// a SQL comment with its filename.
func (ta *testApp) writeFiles(paths ...string) error {
	for _, p := range paths {
		if err := ta.ctx.FS.MkdirAll(path.Dir(p), 0o755); err != nil {
			return err
		}
		err := vfs.WriteFile(ta.ctx.FS, p, []byte("-- "+path.Base(p)+"\n"), 0o644)
		if err != nil {
			return err
		}
	}

	return nil
}

func (ta *testApp) fileNames(dir string) ([]string, error) {
	infos, err := vfs.ReadDir(ta.ctx.FS, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}

	return names, nil
}

func sqlNull[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}

// newTestContext returns a context that times out after timeout, and an
// assertion handling function that cancels the context prematurely and fails
// the test if the assertion fails. This is done to avoid waiting for the
// context timeout to be reached.
func newTestContext(t *testing.T, timeout time.Duration) (
	ctx context.Context, cancelCtx func(), assertHandler func(bool),
) {
	ctx, cancelCtx = context.WithTimeout(t.Context(), timeout)
	assertHandler = func(success bool) {
		if !success {
			cancelCtx()
			t.FailNow()
		}
	}

	return
}

// safeBuffer is a thread-safe buffer.
type safeBuffer struct {
	mx  sync.RWMutex
	buf *bytes.Buffer
}

func newSafeBuffer() *safeBuffer {
	return &safeBuffer{buf: &bytes.Buffer{}}
}

func (b *safeBuffer) Write(p []byte) (n int, err error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Reset() {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.buf.Reset()
}

func (b *safeBuffer) String() string {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.buf.String()
}
