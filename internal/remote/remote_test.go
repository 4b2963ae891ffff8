package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/stickies/internal/models"
)

func newTestServer(t *testing.T, key string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(key, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func sampleSnapshot() *Snapshot {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	done := created.Add(time.Hour)
	parent := uint(1)
	return NewSnapshot(
		[]models.Task{
			{ID: 1, Title: "Learn Go", TaskType: models.TaskTypeMonthly, GoalType: models.GoalTypeLongTerm, CreatedAt: created},
			{ID: 2, Title: "Read tour", TaskType: models.TaskTypeMonthly, GoalType: models.GoalTypeShortTerm,
				ParentID: &parent, IsCompleted: true, CreatedAt: created, CompletedAt: &done},
		},
		[]models.LearningLog{{ID: 1, Domain: "go", Minutes: 25, CreatedAt: created}},
		created.Add(2*time.Hour),
	)
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(nil, nil, time.Now())

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, time.UTC, snap.ExportedAt.Location())
	assert.NotNil(t, snap.Tasks)
	assert.NotNil(t, snap.Learning)
	assert.NotEqual(t, snap.ID, NewSnapshot(nil, nil, time.Now()).ID)
}

func TestPushPullRoundTrip(t *testing.T) {
	srv := newTestServer(t, "secret")
	client, err := NewClient(srv.URL+"/snapshot", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Pull(ctx)
	assert.True(t, errors.Is(err, ErrNoSnapshot))

	snap := sampleSnapshot()
	require.NoError(t, client.Push(ctx, snap))

	got, err := client.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Read tour", got.Tasks[1].Title)
	require.NotNil(t, got.Tasks[1].ParentID)
	assert.Equal(t, uint(1), *got.Tasks[1].ParentID)
	assert.True(t, got.Tasks[1].CompletedAt.Equal(*snap.Tasks[1].CompletedAt))
	require.Len(t, got.Learning, 1)
	assert.Equal(t, "go", got.Learning[0].Domain)
	assert.Equal(t, 25, got.Learning[0].Minutes)
	assert.True(t, got.Learning[0].CreatedAt.Equal(snap.Learning[0].CreatedAt))
}

func TestPushReplacesPrevious(t *testing.T) {
	srv := newTestServer(t, "")
	client, err := NewClient(srv.URL+"/snapshot", "")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, client.Push(ctx, sampleSnapshot()))
	second := NewSnapshot(nil, nil, time.Now())
	require.NoError(t, client.Push(ctx, second))

	got, err := client.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Empty(t, got.Tasks)
}

func TestWrongKeyIsRejected(t *testing.T) {
	srv := newTestServer(t, "secret")
	client, err := NewClient(srv.URL+"/snapshot", "guess")
	require.NoError(t, err)

	err = client.Push(context.Background(), sampleSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "unauthorized")

	_, err = client.Pull(context.Background())
	assert.Error(t, err)
}

func TestServerRejectsBadPayload(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Post(srv.URL+"/snapshot", "application/json", strings.NewReader(`{"tasks": 3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Post(srv.URL+"/snapshot", "application/json", strings.NewReader(`{"tasks": []}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestServerRejectsInvalidRecords(t *testing.T) {
	srv := newTestServer(t, "secret")
	client, err := NewClient(srv.URL+"/snapshot", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	bad := sampleSnapshot()
	bad.Tasks[0].ParentID = &bad.Tasks[1].ID
	err = client.Push(ctx, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent_id")

	noMinutes := sampleSnapshot()
	noMinutes.Learning[0].Minutes = -5
	require.Error(t, client.Push(ctx, noMinutes))

	_, err = client.Pull(ctx)
	assert.True(t, errors.Is(err, ErrNoSnapshot), "nothing stored after a rejected push")
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient("", "key")
	assert.True(t, errors.Is(err, ErrNoRemote))
}

func TestPushUnreachable(t *testing.T) {
	srv := newTestServer(t, "")
	url := srv.URL + "/snapshot"
	srv.Close()

	client, err := NewClient(url, "", WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)
	assert.Error(t, client.Push(context.Background(), sampleSnapshot()))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := NewServer("", nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("server did not stop")
	}
}
