package capture

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/testing/leaktest"
)

type commitRecorder struct {
	mu       sync.Mutex
	commits  chan domain.SceneIndex
	detected []string
}

func newCommitRecorder() *commitRecorder {
	return &commitRecorder{commits: make(chan domain.SceneIndex, 4)}
}

func (r *commitRecorder) commit(_ context.Context, target domain.SceneIndex) {
	r.commits <- target
}

func (r *commitRecorder) detect(_ context.Context, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detected = append(r.detected, text)
}

func (r *commitRecorder) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.detected...)
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not exit")
	}
}

func newUploadSession(cam *UploadCamera, rec *commitRecorder) *Session {
	return NewSession(3, cam, NewImageDecoder(), NewDebouncer(NewResolver(nil), 8, 2), rec.commit, rec.detect)
}

func TestSession_CommitsAndReleasesCamera(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		cam := NewUploadCamera(4, 0)
		rec := newCommitRecorder()
		sess := newUploadSession(cam, rec)

		require.NoError(t, sess.Start(context.Background()))
		assert.True(t, sess.Running())
		assert.True(t, cam.Active())

		require.NoError(t, cam.Push(Frame{Text: "scene:5"}))
		require.NoError(t, cam.Push(Frame{Text: "scene:5"}))

		select {
		case target := <-rec.commits:
			assert.Equal(t, domain.SceneIndex(5), target)
		case <-time.After(2 * time.Second):
			t.Fatal("no commit")
		}

		waitDone(t, sess)
		assert.False(t, sess.Running())
		assert.False(t, cam.Active())
		assert.Equal(t, []string{"scene:5", "scene:5"}, rec.texts())
		assert.ErrorIs(t, cam.Push(Frame{Text: "scene:5"}), domain.ErrCaptureNotActive)
	})
}

func TestSession_StopIsIdempotent(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		cam := NewUploadCamera(4, 0)
		sess := newUploadSession(cam, newCommitRecorder())

		sess.Stop()
		require.NoError(t, sess.Start(context.Background()))
		require.NoError(t, sess.Start(context.Background()), "second start is a no-op")

		sess.Stop()
		sess.Stop()
		assert.False(t, sess.Running())
		assert.False(t, cam.Active())
	})
}

func TestSession_RestartRearmsDebouncer(t *testing.T) {
	cam := NewUploadCamera(4, 0)
	rec := newCommitRecorder()
	sess := newUploadSession(cam, rec)

	for round := 0; round < 2; round++ {
		require.NoError(t, sess.Start(context.Background()))
		require.NoError(t, cam.Push(Frame{Text: "scene=1"}))
		require.NoError(t, cam.Push(Frame{Text: "scene=1"}))
		select {
		case target := <-rec.commits:
			assert.Equal(t, domain.SceneIndex(1), target)
		case <-time.After(2 * time.Second):
			t.Fatalf("no commit in round %d", round)
		}
		waitDone(t, sess)
	}
}

func TestSession_OutlivesStartContext(t *testing.T) {
	cam := NewUploadCamera(4, 0)
	sess := newUploadSession(cam, newCommitRecorder())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sess.Start(ctx))
	cancel()

	time.Sleep(20 * time.Millisecond)
	assert.True(t, sess.Running())
	sess.Stop()
}

func TestSession_IdleStreamEnds(t *testing.T) {
	cam := NewUploadCamera(1, 20*time.Millisecond)
	sess := newUploadSession(cam, newCommitRecorder())

	require.NoError(t, sess.Start(context.Background()))
	waitDone(t, sess)
	assert.False(t, cam.Active())
}

func TestSession_CameraUnavailable(t *testing.T) {
	sess := NewSession(3, UnavailableCamera{}, NewImageDecoder(), newTestDebouncer(1), nil, nil)
	err := sess.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrCaptureUnavailable)
	assert.False(t, sess.Running())
	assert.Nil(t, sess.Done())
}

func TestUploadCamera_SingleStream(t *testing.T) {
	cam := NewUploadCamera(1, 0)
	stream, err := cam.Acquire(context.Background())
	require.NoError(t, err)

	_, err = cam.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrCaptureUnavailable)

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())
	_, err = cam.Acquire(context.Background())
	assert.NoError(t, err)
}

func TestUploadCamera_FullBufferDropsFrame(t *testing.T) {
	cam := NewUploadCamera(1, 0)
	stream, err := cam.Acquire(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	require.NoError(t, cam.Push(Frame{Text: "first"}))
	require.NoError(t, cam.Push(Frame{Text: "second"}))

	f, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", f.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = stream.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestImageDecoder(t *testing.T) {
	d := NewImageDecoder()

	text, err := d.Decode(Frame{Text: "scene:2"})
	require.NoError(t, err)
	assert.Equal(t, "scene:2", text)

	text, err = d.Decode(Frame{})
	require.NoError(t, err)
	assert.Empty(t, text)

	blank := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range blank.Pix {
		blank.Pix[i] = color.White.Y
	}
	text, _ = d.Decode(Frame{Image: blank})
	assert.Empty(t, text)
}
