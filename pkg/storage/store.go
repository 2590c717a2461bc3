package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-sqlite3"
	"github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/ext/regexp"
	"github.com/ncruces/go-sqlite3/ext/unicode"

	"github.com/rubiojr/parems/pkg/db"
	"github.com/rubiojr/parems/pkg/log"
)

// ErrNotFound is returned by lookups of unknown paremiotipus or fonts.
var ErrNotFound = errors.New("not found")

// Collation used to order titles.
const Collation = "catalan"

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 30000",
	"PRAGMA cache_size = -64000", // 64MB cache
	"PRAGMA temp_store = memory",
	"PRAGMA mmap_size = 268435456", // 256MB mmap
}

// Store is the SQLite backed proverb catalog. It implements search.Store.
type Store struct {
	db     *sql.DB
	path   string
	counts *countCache
	logger *log.Logger
}

// NewStore opens the catalog at dbPath and brings its schema up to date.
// Counts are cached for cacheTTL; zero disables the cache.
func NewStore(dbPath string, cacheTTL time.Duration) (*Store, error) {
	conn, err := driver.Open(dbPath, initConn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.InitializeDatabase(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initializing database %s: %w", dbPath, err)
	}

	return &Store{
		db:     conn,
		path:   dbPath,
		counts: newCountCache(cacheTTL),
		logger: log.ForService("storage"),
	}, nil
}

// initConn runs on every new connection of the pool. REGEXP, the Unicode
// aware LIKE and the collation are per connection state in SQLite.
func initConn(c *sqlite3.Conn) error {
	if err := unicode.Register(c); err != nil {
		return fmt.Errorf("registering unicode functions: %w", err)
	}
	if err := regexp.Register(c); err != nil {
		return fmt.Errorf("registering regexp functions: %w", err)
	}
	if err := c.Exec(fmt.Sprintf("SELECT icu_load_collation('ca', '%s')", Collation)); err != nil {
		return fmt.Errorf("loading %s collation: %w", Collation, err)
	}
	for _, pragma := range pragmas {
		if err := c.Exec(pragma); err != nil {
			return fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// SetCacheTTL changes how long counts are cached and drops cached values.
func (s *Store) SetCacheTTL(ttl time.Duration) {
	s.counts.setTTL(ttl)
}
