// Package snapshot persists modules.Collected as a single SQLite database
// file between collection and rendering.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	oerrors "github.com/hpcdocs/mods2docs/internal/errors"
	"github.com/hpcdocs/mods2docs/internal/modules"
)

// SchemaVersion is bumped whenever the table layout changes.
const SchemaVersion = "1"

// ErrSchemaMismatch is returned when a snapshot was written by an
// incompatible version.
var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

const schema = `
CREATE TABLE meta (
  name  TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE architectures (
  seq  INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);
CREATE TABLE package_infos (
  seq       INTEGER PRIMARY KEY,
  arch      TEXT NOT NULL,
  key       TEXT NOT NULL,
  file_path TEXT NOT NULL,
  version   TEXT NOT NULL,
  UNIQUE(arch, key)
);
CREATE TABLE latest_version_info (
  seq           INTEGER PRIMARY KEY,
  key           TEXT NOT NULL,
  arch          TEXT NOT NULL,
  record        TEXT NOT NULL,
  creation_date TEXT NOT NULL,
  installer     TEXT NOT NULL,
  UNIQUE(key, arch)
);
`

// dsn builds a SQLite URI for path, escaping characters such as '?' and '#'
// that would otherwise end the file name.
func dsn(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "_pragma=busy_timeout(5000)",
	}
	return u.String(), nil
}

func open(path string) (*sql.DB, error) {
	name, err := dsn(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Exists reports whether a snapshot file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes data to path, replacing any previous snapshot. The database is
// built in a temporary file in the same directory and renamed into place.
func Save(ctx context.Context, path string, data *modules.Collected) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".collected-*.db")
	if err != nil {
		return fmt.Errorf("creating temporary snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := write(ctx, tmpPath, data); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func write(ctx context.Context, path string, data *modules.Collected) (err error) {
	db, err := open(path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing snapshot: %w", cerr)
		}
	}()

	if _, err = db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `INSERT INTO meta(name, value) VALUES('schema_version', ?)`, SchemaVersion); err != nil {
		return err
	}

	arches := orderedArches(data)
	for _, arch := range arches {
		if _, err = tx.ExecContext(ctx, `INSERT INTO architectures(name) VALUES(?)`, arch); err != nil {
			return fmt.Errorf("writing architecture %s: %w", arch, err)
		}
	}

	for _, arch := range arches {
		idx, ok := data.PackageInfos[arch]
		if !ok {
			continue
		}
		for _, k := range idx.Keys() {
			info, _ := idx.Get(k)
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO package_infos(arch, key, file_path, version) VALUES(?,?,?,?)`,
				arch, k.String(), info.FilePath, info.Version); err != nil {
				return fmt.Errorf("writing package info %s: %w", k, err)
			}
		}
	}

	for _, pk := range data.Latest.Keys() {
		slots := data.Latest.Arches(pk)
		for _, arch := range slotOrder(arches, slots) {
			entry := slots[arch]
			var rec []byte
			rec, err = json.Marshal(entry.Record)
			if err != nil {
				return fmt.Errorf("encoding record %s: %w", pk, err)
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO latest_version_info(key, arch, record, creation_date, installer) VALUES(?,?,?,?,?)`,
				pk.String(), arch, string(rec), entry.CreationDate, entry.Installer); err != nil {
				return fmt.Errorf("writing latest info %s: %w", pk, err)
			}
		}
	}

	return tx.Commit()
}

// orderedArches returns the configured architectures followed by any others
// present in the package index, sorted.
func orderedArches(data *modules.Collected) []string {
	seen := make(map[string]bool, len(data.Architectures))
	out := append([]string(nil), data.Architectures...)
	for _, a := range out {
		seen[a] = true
	}
	var extra []string
	for a := range data.PackageInfos {
		if !seen[a] {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func slotOrder(arches []string, slots map[string]*modules.LatestEntry) []string {
	out := make([]string, 0, len(slots))
	seen := make(map[string]bool, len(slots))
	for _, a := range arches {
		if _, ok := slots[a]; ok {
			out = append(out, a)
			seen[a] = true
		}
	}
	var extra []string
	for a := range slots {
		if !seen[a] {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Load reads the snapshot at path. A missing file yields an error wrapping
// errors.ErrNotFound.
func Load(ctx context.Context, path string) (*modules.Collected, error) {
	if !Exists(path) {
		return nil, oerrors.Wrap(oerrors.ErrNotFound, "snapshot "+path)
	}

	db, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	var version string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE name = 'schema_version'`).Scan(&version); err != nil {
		return nil, fmt.Errorf("reading snapshot schema: %w", err)
	}
	if version != SchemaVersion {
		return nil, fmt.Errorf("%w: have %s, want %s", ErrSchemaMismatch, version, SchemaVersion)
	}

	arches, err := loadArches(ctx, db)
	if err != nil {
		return nil, err
	}
	data := modules.NewCollected(arches)

	if err := loadPackageInfos(ctx, db, data); err != nil {
		return nil, err
	}
	if err := loadLatest(ctx, db, data); err != nil {
		return nil, err
	}
	return data, nil
}

func loadArches(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM architectures ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("reading architectures: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func loadPackageInfos(ctx context.Context, db *sql.DB, data *modules.Collected) error {
	rows, err := db.QueryContext(ctx, `SELECT arch, key, file_path, version FROM package_infos ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("reading package infos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var arch, key, filePath, version string
		if err := rows.Scan(&arch, &key, &filePath, &version); err != nil {
			return err
		}
		k, err := modules.ParseKey(key)
		if err != nil {
			return err
		}
		data.Index(arch).Add(modules.PackageInfo{Key: k, FilePath: filePath, Version: version})
	}
	return rows.Err()
}

func loadLatest(ctx context.Context, db *sql.DB, data *modules.Collected) error {
	rows, err := db.QueryContext(ctx, `SELECT key, arch, record, creation_date, installer FROM latest_version_info ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("reading latest version info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, arch, rec, created, installer string
		if err := rows.Scan(&key, &arch, &rec, &created, &installer); err != nil {
			return err
		}
		pk, err := modules.ParsePackageKey(key)
		if err != nil {
			return err
		}
		var record modules.Record
		if err := json.Unmarshal([]byte(rec), &record); err != nil {
			return fmt.Errorf("decoding record %s: %w", key, err)
		}
		data.Latest.Set(pk, arch, &modules.LatestEntry{
			Record:       &record,
			CreationDate: created,
			Installer:    installer,
		})
	}
	return rows.Err()
}
