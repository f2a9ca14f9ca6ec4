// Package datarecording stores simulation records in SQLite tables.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/structs"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DefaultBatchSize is the number of buffered entries that triggers a flush.
const DefaultBatchSize = 10000

// DataRecorder is a backend that can record and store data.
type DataRecorder interface {
	// CreateTable creates a table whose columns are the exported fields of
	// the sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry of the same type as the table's sample.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all tables, sorted.
	ListTables() []string

	// Flush writes all buffered entries into the database.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

type table struct {
	name       string
	entryType  reflect.Type
	columns    []string
	insertStmt string
	entries    []any
}

type sqliteRecorder struct {
	sync.Mutex
	db *sql.DB

	path      string
	batchSize int
	tables    map[string]*table
	buffered  int
	closed    bool
}

// New creates a recorder writing into path + ".sqlite3". An empty path picks
// a unique name. The recorder is flushed when the program exits through
// atexit.
func New(path string) DataRecorder {
	if path == "" {
		path = "pepc_recording_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Recording to %s\n", filename)

	r := newRecorder(db)
	r.path = filename

	return r
}

// NewWithDB creates a recorder over an opened database.
func NewWithDB(db *sql.DB) DataRecorder {
	return newRecorder(db)
}

func newRecorder(db *sql.DB) *sqliteRecorder {
	r := &sqliteRecorder{
		db:        db,
		batchSize: DefaultBatchSize,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

func isColumnKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func columnsOf(sampleEntry any) []string {
	t := reflect.TypeOf(sampleEntry)
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("entry %T is not a struct", sampleEntry))
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		if !isColumnKind(f.Type.Kind()) {
			panic(fmt.Sprintf("field %s of %T cannot be stored",
				f.Name, sampleEntry))
		}
	}

	return structs.Names(sampleEntry)
}

func (r *sqliteRecorder) CreateTable(tableName string, sampleEntry any) {
	r.Lock()
	defer r.Unlock()

	if _, exists := r.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	columns := columnsOf(sampleEntry)
	r.mustExec(`CREATE TABLE ` + tableName +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);")

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	r.tables[tableName] = &table{
		name:       tableName,
		entryType:  reflect.TypeOf(sampleEntry),
		columns:    columns,
		insertStmt: "INSERT INTO " + tableName + " VALUES (" + marks + ")",
	}
}

func (r *sqliteRecorder) InsertData(tableName string, entry any) {
	r.Lock()
	defer r.Unlock()

	t, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.entryType {
		panic(fmt.Sprintf("table %s stores %s, got %T",
			tableName, t.entryType, entry))
	}

	t.entries = append(t.entries, entry)

	r.buffered++
	if r.buffered >= r.batchSize {
		r.flush()
	}
}

func (r *sqliteRecorder) ListTables() []string {
	r.Lock()
	defer r.Unlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *sqliteRecorder) Flush() {
	r.Lock()
	defer r.Unlock()

	r.flush()
}

func (r *sqliteRecorder) flush() {
	if r.buffered == 0 || r.closed {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		panic(err)
	}

	for _, t := range r.tables {
		if len(t.entries) == 0 {
			continue
		}

		if err := insertAll(tx, t); err != nil {
			_ = tx.Rollback()
			panic(fmt.Errorf("flushing table %s: %w", t.name, err))
		}

		t.entries = nil
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	r.buffered = 0
}

func insertAll(tx *sql.Tx, t *table) error {
	stmt, err := tx.Prepare(t.insertStmt)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range t.entries {
		if _, err := stmt.Exec(structs.Values(entry)...); err != nil {
			return err
		}
	}

	return nil
}

func (r *sqliteRecorder) Close() error {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil
	}

	r.flush()
	r.closed = true

	return r.db.Close()
}

func (r *sqliteRecorder) mustExec(query string) {
	if _, err := r.db.Exec(query); err != nil {
		panic(fmt.Errorf("executing %q: %w", query, err))
	}
}
