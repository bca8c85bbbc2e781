package repository

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rli-storage-service/internal/config"
	"rli-storage-service/internal/metrics"
	"rli-storage-service/internal/models"
)

func uptr(v uint) *uint { return &v }

func iptr(v int) *int { return &v }

func fptr(v float64) *float64 { return &v }

func tptr(v time.Time) *time.Time { return &v }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "rlsdb.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDatabase(db) })
	require.NoError(t, Migrate(db))
	return db
}

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return New(openTestDB(t), metrics.NewRepositoryMetrics(prometheus.NewRegistry()))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"type_session", "type_source_rli", "session", "coordinates", "extent", "file",
		"raw_rli", "rli", "raster_rli", "type_binding_method", "linked_rli", "mark",
		"relating_object", "object", "target", "region",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestCreate_GetByID_RoundTrip(t *testing.T) {
	repos := newTestRepos(t)

	lat, lon := 55.75, 37.62
	coordID, err := repos.Coordinates.Create(&models.Coordinates{Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)
	coord, err := repos.Coordinates.GetByID(coordID)
	require.NoError(t, err)
	assert.Equal(t, lat, *coord.Latitude)
	assert.Equal(t, lon, *coord.Longitude)
	assert.Equal(t, 0.0, coord.Altitude, "altitude defaults to 0")

	roID, err := repos.RelatingObjects.Create(&models.RelatingObject{TypeRelating: iptr(3), Name: "ship"})
	require.NoError(t, err)
	ro, err := repos.RelatingObjects.GetByID(roID)
	require.NoError(t, err)
	assert.Equal(t, 3, *ro.TypeRelating)
	assert.Equal(t, "ship", ro.Name)

	objID, err := repos.Objects.Create(&models.Object{
		Name:             "vessel",
		Type:             "surface",
		RelatingObjectID: &roID,
		Meta:             []byte(`{"length_m":120}`),
	})
	require.NoError(t, err)
	obj, err := repos.Objects.GetByID(objID)
	require.NoError(t, err)
	assert.Equal(t, "vessel", obj.Name)
	assert.Equal(t, "surface", obj.Type)
	assert.Equal(t, roID, *obj.RelatingObjectID)
	assert.JSONEq(t, `{"length_m":120}`, string(obj.Meta))

	located := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rliID, err := repos.RLIs.Create(&models.RLI{Name: "rli-1", TimeLocation: tptr(located)})
	require.NoError(t, err)
	rli, err := repos.RLIs.GetByID(rliID)
	require.NoError(t, err)
	assert.Equal(t, "rli-1", rli.Name)
	assert.False(t, rli.IsProcessing)
	assert.Nil(t, rli.RawRLIID)
	require.NotNil(t, rli.TimeLocation)
	assert.True(t, located.Equal(*rli.TimeLocation))
}

func TestCreate_IgnoresCallerID(t *testing.T) {
	repos := newTestRepos(t)

	first, err := repos.TypeSessions.Create(&models.TypeSession{Name: "Survey"})
	require.NoError(t, err)
	rec := &models.TypeSession{Name: "Patrol"}
	rec.ID = first
	second, err := repos.TypeSessions.Create(rec)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCreate_ValidationError(t *testing.T) {
	repos := newTestRepos(t)

	tests := []struct {
		name   string
		create func() error
		field  string
	}{
		{"type session name", func() error {
			_, err := repos.TypeSessions.Create(&models.TypeSession{})
			return err
		}, "name"},
		{"session path", func() error {
			_, err := repos.Sessions.Create(&models.Session{Name: "S1"})
			return err
		}, "path_to_directory"},
		{"coordinates latitude", func() error {
			_, err := repos.Coordinates.Create(&models.Coordinates{Longitude: fptr(1)})
			return err
		}, "latitude"},
		{"rli name", func() error {
			_, err := repos.RLIs.Create(&models.RLI{})
			return err
		}, "name"},
		{"relating object type", func() error {
			_, err := repos.RelatingObjects.Create(&models.RelatingObject{Name: "x"})
			return err
		}, "type_relating"},
		{"target number", func() error {
			_, err := repos.Targets.Create(&models.Target{})
			return err
		}, "number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create()
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreate_DanglingReferenceIsStoreError(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Files.Create(&models.File{Name: "f.tif", PathToFile: "/f.tif", SessionID: uptr(999)})
	var serr *StoreError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, "file", serr.Entity)
	assert.Equal(t, "create", serr.Op)
	assert.NotNil(t, pkgerrors.Cause(err))
}

func TestGetByID_NotFound(t *testing.T) {
	repos := newTestRepos(t)

	rec, err := repos.Sessions.GetByID(42)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdate_MissingIDIsNoop(t *testing.T) {
	repos := newTestRepos(t)

	id, err := repos.TypeSessions.Create(&models.TypeSession{Name: "Survey"})
	require.NoError(t, err)

	// an invalid record is not even looked at when the id is absent
	assert.NoError(t, repos.TypeSessions.Update(id+100, &models.TypeSession{}))

	got, err := repos.TypeSessions.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Survey", got.Name)
	_, err = repos.TypeSessions.GetByID(id + 100)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdate_OverwritesAndRestamps(t *testing.T) {
	repos := newTestRepos(t)

	otherID, err := repos.Sessions.Create(&models.Session{Name: "S0", PathToDirectory: "/data/s0"})
	require.NoError(t, err)
	id, err := repos.Sessions.Create(&models.Session{Name: "S1", PathToDirectory: "/data/s1"})
	require.NoError(t, err)
	before, err := repos.Sessions.GetByID(id)
	require.NoError(t, err)
	other, err := repos.Sessions.GetByID(otherID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, repos.Sessions.Update(id, &models.Session{Name: "S1b", PathToDirectory: "/data/s1b"}))

	after, err := repos.Sessions.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "S1b", after.Name)
	assert.Equal(t, "/data/s1b", after.PathToDirectory)
	assert.True(t, after.Date.After(before.Date), "date must be re-stamped")

	unchanged, err := repos.Sessions.GetByID(otherID)
	require.NoError(t, err)
	assert.Equal(t, other.Name, unchanged.Name)
	assert.True(t, other.Date.Equal(unchanged.Date))
}

func TestUpdate_ValidationError(t *testing.T) {
	repos := newTestRepos(t)

	id, err := repos.TypeBindingMethods.Create(&models.TypeBindingMethod{Name: "affine"})
	require.NoError(t, err)
	err = repos.TypeBindingMethods.Update(id, &models.TypeBindingMethod{})
	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestDelete_MissingIDIsNoop(t *testing.T) {
	repos := newTestRepos(t)

	id, err := repos.Regions.Create(&models.Region{Name: "north"})
	require.NoError(t, err)
	require.NoError(t, repos.Regions.Delete(id+1))

	all, err := repos.Regions.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConcurrentCreates_DistinctIDs(t *testing.T) {
	repos := newTestRepos(t)

	const n = 32
	ids := make([]uint, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = repos.Marks.Create(&models.Mark{})
		}(i)
	}
	wg.Wait()

	seen := make(map[uint]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "duplicate id %d", ids[i])
		seen[ids[i]] = true
	}
	all, err := repos.Marks.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, n)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestStores_DoNotShareLocks(t *testing.T) {
	repos := newTestRepos(t)

	repos.Sessions.mu.Lock()
	defer repos.Sessions.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := repos.TypeSessions.Create(&models.TypeSession{Name: "Survey"})
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("create on type_session blocked behind the session lock")
	}
}

func TestUpdate_RestampsReceivingAndMarkTimes(t *testing.T) {
	repos := newTestRepos(t)

	rawID, err := repos.RawRLIs.Create(&models.RawRLI{})
	require.NoError(t, err)
	markID, err := repos.Marks.Create(&models.Mark{})
	require.NoError(t, err)
	raw, err := repos.RawRLIs.GetByID(rawID)
	require.NoError(t, err)
	mark, err := repos.Marks.GetByID(markID)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, repos.RawRLIs.Update(rawID, &models.RawRLI{}))
	require.NoError(t, repos.Marks.Update(markID, &models.Mark{}))

	rawAfter, err := repos.RawRLIs.GetByID(rawID)
	require.NoError(t, err)
	markAfter, err := repos.Marks.GetByID(markID)
	require.NoError(t, err)
	assert.True(t, rawAfter.DateReceiving.After(raw.DateReceiving), "date_receiving must be re-stamped")
	assert.True(t, markAfter.Datetime.After(mark.Datetime), "datetime must be re-stamped")
}

// blocksWhileLocked holds mu, checks op does not finish, then releases mu
// and checks op completes.
func blocksWhileLocked(t *testing.T, mu *sync.Mutex, op func() error) {
	t.Helper()
	mu.Lock()
	done := make(chan error, 1)
	go func() { done <- op() }()
	select {
	case <-done:
		mu.Unlock()
		t.Fatal("operation finished while its store was locked")
	case <-time.After(100 * time.Millisecond):
	}
	mu.Unlock()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("operation did not resume after unlock")
	}
}

func TestSameStore_Serializes(t *testing.T) {
	repos := newTestRepos(t)
	sessionID, err := repos.Sessions.Create(&models.Session{Name: "S1", PathToDirectory: "/data/s1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		mu   *sync.Mutex
		op   func() error
	}{
		{"mark by session", &repos.Marks.mu, func() error {
			_, err := repos.Marks.GetBySessionID(sessionID)
			return err
		}},
		{"mark create", &repos.Marks.mu, func() error {
			_, err := repos.Marks.Create(&models.Mark{SessionID: &sessionID})
			return err
		}},
		{"rli by session", &repos.RLIs.mu, func() error {
			_, err := repos.RLIs.GetBySessionID(sessionID)
			return err
		}},
		{"target by session", &repos.Targets.mu, func() error {
			_, err := repos.Targets.GetBySessionID(sessionID)
			return err
		}},
		{"session get", &repos.Sessions.mu, func() error {
			_, err := repos.Sessions.GetByID(sessionID)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocksWhileLocked(t, tt.mu, tt.op)
		})
	}
}

func TestDerivedQuery_IgnoresIntermediateLocks(t *testing.T) {
	repos := newTestRepos(t)

	repos.Files.mu.Lock()
	repos.RawRLIs.mu.Lock()
	defer repos.Files.mu.Unlock()
	defer repos.RawRLIs.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := repos.RLIs.GetBySessionID(1)
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("rli query blocked behind file or raw_rli locks")
	}
}

func TestStore_Entity(t *testing.T) {
	repos := newTestRepos(t)

	assert.Equal(t, "session", repos.Sessions.Entity())
	assert.Equal(t, "raw_rli", repos.RawRLIs.Entity())
	assert.Equal(t, "type_binding_method", repos.TypeBindingMethods.Entity())
}
