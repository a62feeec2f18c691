// Package wire provides dependency injection for the trove application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/example/trove/internal/adapters/jsonfile"
	"github.com/example/trove/internal/adapters/sqlitedoc"
	"github.com/example/trove/internal/app"
	"github.com/example/trove/internal/config"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/ports/secondary"
	"github.com/example/trove/internal/store"
)

var (
	cfg     *config.Config
	home    string
	dataDir string

	giftService   *app.GiftService
	moodService   *app.MoodService
	seriesService *app.SeriesService
	dreamService  *app.DreamService

	closers  []func() error
	errChans []<-chan error

	once sync.Once
)

// GiftService returns the singleton GiftService instance.
func GiftService() *app.GiftService {
	once.Do(initServices)
	return giftService
}

// MoodService returns the singleton MoodService instance.
func MoodService() *app.MoodService {
	once.Do(initServices)
	return moodService
}

// SeriesService returns the singleton SeriesService instance.
func SeriesService() *app.SeriesService {
	once.Do(initServices)
	return seriesService
}

// DreamService returns the singleton DreamService instance.
func DreamService() *app.DreamService {
	once.Do(initServices)
	return dreamService
}

// Config returns the loaded configuration and the trove home directory.
func Config() (*config.Config, string) {
	once.Do(initServices)
	return cfg, home
}

// Close flushes pending saves on every store. Call on process exit; a
// no-op when no service was ever used.
func Close() {
	for _, c := range closers {
		c()
	}
}

// Warnings drains any persistence failures the stores have reported so
// far. The failures are best-effort background saves; the in-memory
// state the user saw is still correct.
func Warnings() []error {
	var warnings []error
	for _, ch := range errChans {
		for {
			select {
			case err := <-ch:
				warnings = append(warnings, err)
				continue
			default:
			}
			break
		}
	}
	return warnings
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	home, err = config.Home()
	if err != nil {
		log.Fatalf("failed to locate trove home: %v", err)
	}
	cfg, err = config.LoadConfig(home)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	dataDir = cfg.DataDirPath(home)

	// Storage collaborators (secondary ports), selected by config
	gifts := newCollection[models.GiftIdea]("gifts")
	categories := newCollection[models.CustomCategory]("categories")
	moods := newCollection[models.MoodEntry]("moods")
	series := newCollection[models.Series]("series")
	dreams := newCollection[models.Dream]("dreams")

	// Create services
	giftService = app.NewGiftService(gifts, categories)
	moodService = app.NewMoodService(moods)
	seriesService = app.NewSeriesService(series)
	dreamService = app.NewDreamService(dreams)
}

var (
	sharedDB    *sql.DB
	sharedDBErr error
	dbOnce      sync.Once
)

// database opens the shared SQLite handle on first use. All collections
// live in one database file.
func database() (*sql.DB, error) {
	dbOnce.Do(func() {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			sharedDBErr = err
			return
		}
		sharedDB, sharedDBErr = sqlitedoc.Open(filepath.Join(dataDir, "trove.db"))
	})
	return sharedDB, sharedDBErr
}

// newCollection opens the configured storage for one named collection,
// builds its store, and loads the persisted records.
func newCollection[T store.Record[T]](name string) *store.Store[T] {
	var storage secondary.Storage[T]
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := database()
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		storage = sqlitedoc.New[T](db, name)
	default:
		storage = jsonfile.New[T](filepath.Join(dataDir, name+".json"))
	}

	s := store.New[T](storage)
	s.Load(context.Background())

	closers = append(closers, s.Close)
	errChans = append(errChans, s.Errors())
	return s
}
