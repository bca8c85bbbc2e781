package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rli-storage-service/internal/config"
	"rli-storage-service/internal/models"
	"rli-storage-service/internal/repository"
)

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "rlsdb.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDatabase(db) })
	require.NoError(t, repository.Migrate(db))
	return repository.New(db, nil)
}

func TestRLITable_HeadersAndCells(t *testing.T) {
	raw := uint(4)
	located := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	rows := []models.RLI{
		{Base: models.Base{ID: 1}, Name: "a", TimeLocation: &located, IsProcessing: true, RawRLIID: &raw},
		{Base: models.Base{ID: 2}, Name: "b"},
	}

	table := RLITable(rows)
	require.Len(t, table, 3)
	assert.Equal(t, []interface{}{"id", "name", "time_location", "is_processing", "raw_rli_id"}, table[0])
	assert.Equal(t, []interface{}{uint(1), "a", located, true, uint(4)}, table[1])
	assert.Equal(t, []interface{}{uint(2), "b", nil, false, nil}, table[2])
}

func TestWriteCSV(t *testing.T) {
	located := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	table := Table{
		{"id", "name", "when", "flag", "value"},
		{uint(1), "a,b", located, true, 1.5},
		{uint(2), "c", nil, false, nil},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	want := "id,name,when,flag,value\n" +
		"1,\"a,b\",2024-05-06T07:08:09Z,true,1.5\n" +
		"2,c,,false,\n"
	assert.Equal(t, want, buf.String())
}

func TestSessionReport(t *testing.T) {
	repos := newTestRepos(t)

	sessionID, err := repos.Sessions.Create(&models.Session{Name: "S1", PathToDirectory: "/data/s1"})
	require.NoError(t, err)
	fileID, err := repos.Files.Create(&models.File{Name: "f.tif", PathToFile: "/data/s1/f.tif", SessionID: &sessionID})
	require.NoError(t, err)
	rawID, err := repos.RawRLIs.Create(&models.RawRLI{FileID: &fileID})
	require.NoError(t, err)
	_, err = repos.RLIs.Create(&models.RLI{Name: "rli-1", RawRLIID: &rawID})
	require.NoError(t, err)
	_, err = repos.Marks.Create(&models.Mark{SessionID: &sessionID})
	require.NoError(t, err)

	sheets, err := SessionReport(repos, sessionID)
	require.NoError(t, err)
	require.Len(t, sheets, 4)

	rli, ok := FindSheet(sheets, "rli")
	require.True(t, ok)
	require.Len(t, rli.Table, 2)
	assert.Equal(t, "rli-1", rli.Table[1][1])

	mark, ok := FindSheet(sheets, "mark")
	require.True(t, ok)
	assert.Len(t, mark.Table, 2)

	target, ok := FindSheet(sheets, "target")
	require.True(t, ok)
	assert.Len(t, target.Table, 1, "headers only")

	_, ok = FindSheet(sheets, "nope")
	assert.False(t, ok)
}

func TestSessionReport_MissingSession(t *testing.T) {
	repos := newTestRepos(t)

	_, err := SessionReport(repos, 12)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

type fakePutter struct {
	bucket  string
	objects map[string]string
	failOn  string
}

func (f *fakePutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader,
	objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.failOn != "" && strings.HasSuffix(objectName, f.failOn) {
		return minio.UploadInfo{}, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if int64(len(data)) != objectSize {
		return minio.UploadInfo{}, errors.New("size mismatch")
	}
	f.bucket = bucketName
	f.objects[objectName] = string(data)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestPublisher_Publish(t *testing.T) {
	putter := &fakePutter{objects: map[string]string{}}
	p := NewPublisher(putter, "reports")

	sheets := []Sheet{
		{Name: "rli", Table: Table{{"id"}, {uint(1)}}},
		{Name: "mark", Table: Table{{"id"}}},
	}
	keys, err := p.Publish(context.Background(), "session-1", sheets)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "reports", putter.bucket)
	assert.True(t, strings.HasPrefix(keys[0], "reports/session-1-"))
	assert.True(t, strings.HasSuffix(keys[0], "/rli.csv"))
	assert.Equal(t, "id\n1\n", putter.objects[keys[0]])
	assert.Equal(t, "id\n", putter.objects[keys[1]])
}

func TestPublisher_UploadError(t *testing.T) {
	putter := &fakePutter{objects: map[string]string{}, failOn: "mark.csv"}
	p := NewPublisher(putter, "reports")

	keys, err := p.Publish(context.Background(), "s", []Sheet{
		{Name: "rli", Table: Table{{"id"}}},
		{Name: "mark", Table: Table{{"id"}}},
	})
	assert.Error(t, err)
	assert.Len(t, keys, 1)
}
