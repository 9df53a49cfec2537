// Package backup runs pg_dump against the configured database and keeps
// a bounded set of dump files on local disk.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/logger"
)

type Manager struct {
	cfg config.BackupConfig
	db  config.DatabaseConfig
	log *slog.Logger
}

func NewManager(cfg config.BackupConfig, db config.DatabaseConfig) *Manager {
	return &Manager{cfg: cfg, db: db, log: logger.WithService("backup")}
}

// Run produces a new dump file and prunes old ones. Returns the created
// file name (not the full path).
func (m *Manager) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(m.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.sql",
		m.cfg.FilePrefix,
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
	)
	path := filepath.Join(m.cfg.Dir, name)

	cmd := exec.CommandContext(ctx, "pg_dump",
		"--host", m.db.Host,
		"--port", fmt.Sprint(m.db.Port),
		"--username", m.db.User,
		"--dbname", m.db.Database,
		"--no-password",
		"--file", path,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+m.db.Password)

	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("pg_dump: %w: %s", err, strings.TrimSpace(string(out)))
	}
	m.log.Info("database backup created", "file", name)

	if err := m.prune(); err != nil {
		m.log.Warn("backup pruning failed", "error", err)
	}
	return name, nil
}

// List returns dump file names, newest first.
func (m *Manager) List() ([]string, error) {
	files, err := m.dumpFiles()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	return names, nil
}

// Open returns a handle to a named dump. The name is reduced to its base
// component so request paths cannot escape the backup directory.
func (m *Manager) Open(name string) (*os.File, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	if !strings.HasPrefix(base, m.cfg.FilePrefix+"_") || !strings.HasSuffix(base, ".sql") {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	return os.Open(filepath.Join(m.cfg.Dir, base))
}

func (m *Manager) prune() error {
	if m.cfg.Keep <= 0 {
		return nil
	}
	files, err := m.dumpFiles()
	if err != nil {
		return err
	}
	for _, f := range files[min(len(files), m.cfg.Keep):] {
		if err := os.Remove(filepath.Join(m.cfg.Dir, f.name)); err != nil {
			return err
		}
		m.log.Info("old backup removed", "file", f.name)
	}
	return nil
}

type dumpFile struct {
	name    string
	modTime time.Time
}

func (m *Manager) dumpFiles() ([]dumpFile, error) {
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []dumpFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), m.cfg.FilePrefix+"_") || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, dumpFile{name: e.Name(), modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime.After(files[j].modTime) })
	return files, nil
}
