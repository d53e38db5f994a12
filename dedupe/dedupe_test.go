package dedupe

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, capacity int) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewStore(path, capacity, slog.Default())
	require.NoError(t, err)
	return s
}

func TestShouldProcessFreshIDs(t *testing.T) {
	assert := assert.New(t)
	s := newTestStore(t, 10)

	assert.True(s.ShouldProcess(StreamMentions, "100"))
	s.MarkProcessed(StreamMentions, "100")

	// Same id, and anything at or below the watermark, is rejected.
	assert.False(s.ShouldProcess(StreamMentions, "100"))
	assert.False(s.ShouldProcess(StreamMentions, "99"))
	assert.True(s.ShouldProcess(StreamMentions, "101"))
}

func TestStreamsAreIndependent(t *testing.T) {
	assert := assert.New(t)
	s := newTestStore(t, 10)

	s.MarkProcessed(StreamMentions, "500")
	assert.True(s.ShouldProcess(StreamMonitoredPosts, "100"))
	assert.False(s.ShouldProcess(StreamMentions, "100"))
}

func TestMarkProcessedIdempotent(t *testing.T) {
	assert := assert.New(t)
	s := newTestStore(t, 10)

	s.MarkProcessed(StreamMentions, "200")
	s.MarkProcessed(StreamMentions, "200")
	s.MarkProcessed(StreamMentions, "150") // stale id must not move it back

	mark, ok := s.Watermark(StreamMentions)
	assert.True(ok)
	assert.Equal("200", mark)
}

func TestNoteReply(t *testing.T) {
	assert := assert.New(t)
	s := newTestStore(t, 10)

	s.NoteReply("777")
	assert.False(s.ShouldProcess(StreamMentions, "777"))

	// Replies never advance watermarks.
	_, ok := s.Watermark(StreamMentions)
	assert.False(ok)
}

func TestCacheEvictsOldestHalf(t *testing.T) {
	assert := assert.New(t)
	s := newTestStore(t, 10)

	for i := 1; i <= 11; i++ {
		s.NoteReply(fmt.Sprintf("%d", i))
	}

	// Capacity 10, eleventh insert evicts ids 1-5.
	assert.True(s.ShouldProcess(StreamMentions, "1"))
	assert.True(s.ShouldProcess(StreamMentions, "5"))
	assert.False(s.ShouldProcess(StreamMentions, "6"))
	assert.False(s.ShouldProcess(StreamMentions, "11"))
}

func TestPersistenceRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewStore(path, 10, slog.Default())
	require.NoError(err)

	s.MarkProcessed(StreamMentions, "12345")
	s.MarkProcessed(StreamMonitoredPosts, "67890")

	var wf struct {
		Mentions *string `json:"mentions"`
		BTPosts  *string `json:"bt_posts"`
	}
	data, err := os.ReadFile(path)
	require.NoError(err)
	require.NoError(json.Unmarshal(data, &wf))
	require.NotNil(wf.Mentions)
	require.NotNil(wf.BTPosts)
	assert.Equal("12345", *wf.Mentions)
	assert.Equal("67890", *wf.BTPosts)

	// No temp file left behind after the atomic replace.
	_, err = os.Stat(path + ".tmp")
	assert.True(os.IsNotExist(err))

	// A fresh store picks the watermarks back up.
	s2, err := NewStore(path, 10, slog.Default())
	require.NoError(err)
	assert.False(s2.ShouldProcess(StreamMentions, "12345"))
	assert.False(s2.ShouldProcess(StreamMonitoredPosts, "67890"))
	assert.True(s2.ShouldProcess(StreamMentions, "12346"))
}

func TestNewStoreMissingFile(t *testing.T) {
	assert := assert.New(t)
	s, err := NewStore(filepath.Join(t.TempDir(), "nope.json"), 10, slog.Default())
	assert.NoError(err)
	_, ok := s.Watermark(StreamMentions)
	assert.False(ok)
}

func TestNewStoreCorruptFile(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStore(path, 10, slog.Default())
	require.Error(err)
}

func TestCompareIDs(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		a, b string
		want int
	}{
		{a: "1", b: "2", want: -1},
		{a: "2", b: "1", want: 1},
		{a: "2", b: "2", want: 0},
		{a: "9", b: "10", want: -1},
		{a: "110000000000000000", b: "19000000000000000", want: 1},
		{a: "abc", b: "abd", want: -1},
		{a: "z", b: "aa", want: -1}, // shorter sorts first when non-numeric
	}

	for _, fix := range fixtures {
		assert.Equal(fix.want, CompareIDs(fix.a, fix.b), "%q vs %q", fix.a, fix.b)
	}
}
