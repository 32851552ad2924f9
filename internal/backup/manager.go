package backup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/logger"
)

// backupTimeLayout is the timestamp embedded in backup file names.
const backupTimeLayout = "20060102-150405"

// LatestBackup names the newest backup in ResolveBackupPath.
const LatestBackup = "latest"

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Name returns the file name of the backup.
func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager keeps export documents in a backups directory beside the journal.
type Manager struct {
	dataPath  string
	backupDir string
	clock     func() time.Time
}

// NewManager creates a manager for the journal stored at dataPath.
func NewManager(dataPath string, opts ...Option) *Manager {
	c := buildConfig(opts)
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
		clock:     c.clock,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes doc to a new timestamped file and prunes the oldest
// files beyond MaxBackups.
func (m *Manager) CreateBackup(doc Document) (string, error) {
	path, err := m.writeBackup(doc)
	if err != nil {
		return "", err
	}
	if err := m.rotateBackups(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) writeBackup(doc Document) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to finalize backup: %w", err)
	}

	logger.Info("Backup written", "path", path, "entries", len(doc.Entries))
	return path, nil
}

// nextBackupPath returns an unused file name for the current second,
// adding a counter when one already exists.
func (m *Manager) nextBackupPath() (string, error) {
	// Names are read back in the local zone, so they are written in it too.
	stamp := m.clock().In(time.Local).Format(backupTimeLayout)
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)

	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, constants.BackupFileSuffix)
		path = filepath.Join(m.backupDir, name)
	}
}

// parseBackupName extracts the timestamp and collision counter from a
// backup file name.
func parseBackupName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	counter := 0
	if len(stamp) > len(backupTimeLayout) {
		suffix := stamp[len(backupTimeLayout):]
		if _, err := fmt.Sscanf(suffix, "-%d", &counter); err != nil || fmt.Sprintf("-%d", counter) != suffix {
			return time.Time{}, 0, false
		}
		stamp = stamp[:len(backupTimeLayout)]
	}

	ts, err := time.ParseInLocation(backupTimeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, counter, true
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	dirEntries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type listed struct {
		info    BackupInfo
		counter int
	}
	var found []listed
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		ts, counter, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, listed{
			info: BackupInfo{
				Path:      filepath.Join(m.backupDir, entry.Name()),
				Timestamp: ts,
				Size:      info.Size(),
			},
			counter: counter,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].info.Timestamp.Equal(found[j].info.Timestamp) {
			return found[i].info.Timestamp.After(found[j].info.Timestamp)
		}
		return found[i].counter > found[j].counter
	})

	backups := make([]BackupInfo, len(found))
	for i, f := range found {
		backups[i] = f.info
	}
	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// ResolveBackupPath turns a user argument into a backup file path. A bare
// file name is looked up in the backup directory, "latest" picks the newest
// backup, and any other path is used as given.
func (m *Manager) ResolveBackupPath(arg string) (string, error) {
	if arg == LatestBackup {
		backups, err := m.ListBackups()
		if err != nil {
			return "", err
		}
		if len(backups) == 0 {
			return "", fmt.Errorf("no backups found in %s", m.backupDir)
		}
		return backups[0].Path, nil
	}

	path := arg
	if !filepath.IsAbs(arg) && !strings.ContainsRune(arg, filepath.Separator) {
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			path = filepath.Join(m.backupDir, arg)
		}
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", arg)
	}
	return path, nil
}

// VerifyBackup reads path and checks that it is an export document.
func (m *Manager) VerifyBackup(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read backup: %w", err)
	}
	doc, err := DecodeDocument(raw)
	if err != nil {
		return Document{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	return doc, nil
}

// RestoreBackup imports the backup at path through svc. The current state
// is saved to a new backup first, without rotation, so a restore can be
// undone.
func (m *Manager) RestoreBackup(svc *Service, path string) (ImportResult, string, error) {
	if _, err := m.VerifyBackup(path); err != nil {
		return ImportResult{}, "", err
	}

	var safety string
	_, err := svc.ExportTo(func(current Document) error {
		var err error
		safety, err = m.writeBackup(current)
		return err
	})
	if err != nil {
		return ImportResult{}, "", fmt.Errorf("failed to back up current journal before restore: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, safety, fmt.Errorf("failed to read backup: %w", err)
	}
	result, err := svc.Import(raw)
	if err != nil {
		return result, safety, err
	}
	logger.Info("Backup restored", "path", path, "entries", result.Entries)
	return result, safety, nil
}
