package api

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediadesk/internal/catalog"
	"mediadesk/internal/sandbox"
	"mediadesk/internal/services"
)

func TestStreamIndexDecoding(t *testing.T) {
	cases := []struct {
		body string
		want *int
	}{
		{body: `{"input":"a"}`, want: nil},
		{body: `{"streamIndex":null}`, want: nil},
		{body: `{"streamIndex":2}`, want: intPtr(2)},
		{body: `{"streamIndex":"3"}`, want: intPtr(3)},
		{body: `{"streamIndex":" 4 "}`, want: intPtr(4)},
		{body: `{"streamIndex":"abc"}`, want: nil},
		{body: `{"streamIndex":1.5}`, want: nil},
		{body: `{"streamIndex":true}`, want: nil},
		{body: `{"streamIndex":-1}`, want: intPtr(-1)},
	}
	for _, tc := range cases {
		var req ExtractRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)
		assert.Equal(t, tc.want, req.StreamIndex.Ptr(), tc.body)
	}
}

func TestStreamIndexMarshal(t *testing.T) {
	data, err := json.Marshal(ExtractRequest{Input: "a", StreamIndex: NewStreamIndex(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"a","streamIndex":1}`, string(data))

	data, err = json.Marshal(ExtractRequest{Input: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"a","streamIndex":null}`, string(data))
}

func TestFromEntries(t *testing.T) {
	mod := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	out := FromEntries([]catalog.Entry{
		{Name: "a.mkv", Path: "/m/a.mkv", Size: 10, Modified: mod, Ext: ".mkv", Kind: catalog.KindVideo},
		{Name: "dir", Path: "/m/dir", IsDir: true, Kind: catalog.KindDirectory},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "2024-03-01T12:30:00.000Z", out[0].Modified)
	assert.Equal(t, "video", out[0].Kind)
	assert.Equal(t, "", out[1].Modified)
	assert.Equal(t, "directory", out[1].Kind)

	empty := FromEntries(nil)
	assert.NotNil(t, empty)
	data, err := json.Marshal(BrowseResponse{Path: "/m", Entries: empty})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/m","entries":[]}`, string(data))
}

func TestConvertRequests(t *testing.T) {
	gop := 60
	hevc := HEVCRequest{Input: "/m/a.mkv", Bitrate: "5M", GOP: &gop}.ToHEVC()
	assert.Equal(t, "5M", hevc.Bitrate)
	require.NotNil(t, hevc.GOP)
	assert.Equal(t, 60, *hevc.GOP)

	op := FileOpRequest{Action: "rename", Source: "/m/a", Target: "/m/b"}.ToOperation()
	assert.Equal(t, "rename", string(op.Action))

	extract := ExtractRequest{Input: "/m/a.mkv", StreamIndex: NewStreamIndex(2)}.ToExtract()
	require.NotNil(t, extract.StreamIndex)
	assert.Equal(t, 2, *extract.StreamIndex)
}

func TestStubTranslate(t *testing.T) {
	root := t.TempDir()
	box := sandbox.New([]string{root})

	resp, err := StubTranslate(box, 100, TranslateRequest{Input: filepath.Join(root, "a.srt")})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, 100, resp.BatchSize)
	assert.NotEmpty(t, resp.Message)

	resp, err = StubTranslate(box, 100, TranslateRequest{Input: filepath.Join(root, "a.srt"), BatchSize: intPtr(25)})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.BatchSize)

	_, err = StubTranslate(box, 100, TranslateRequest{Input: "/etc/passwd"})
	assert.ErrorIs(t, err, services.ErrOutOfBounds)

	_, err = StubTranslate(box, 100, TranslateRequest{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func intPtr(v int) *int { return &v }
