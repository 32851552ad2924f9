package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/worthy/internal/backup"
	"github.com/julianstephens/worthy/internal/constants"
)

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	backups, err := ctx.Manager.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", ctx.Manager.GetBackupDir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.printf("  %s  %s  (%.1f KB)\n", timestamp, b.Name(), sizeKB)
	}
	ctx.printf("\nBackup directory: %s\n", ctx.Manager.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" optional:"" default:"latest" help:"Backup file name, path, or 'latest'."`
	Yes    bool   `short:"y" help:"Restore without asking."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	path, err := ctx.Manager.ResolveBackupPath(c.Backup)
	if err != nil {
		return err
	}
	doc, err := ctx.Manager.VerifyBackup(path)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(
			fmt.Sprintf("Restore %d entries exported %s?", len(doc.Entries), exportedLabel(doc)),
			"Entries are merged by id and settings are replaced. The current journal is saved to a new backup first.",
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Restore cancelled.")
			return nil
		}
	}

	result, safety, err := ctx.Manager.RestoreBackup(ctx.Backups, path)
	if safety != "" {
		ctx.printf("Previous state saved to: %s\n", safety)
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.println(successStyle.Render(fmt.Sprintf("✓ Restored %d entries from %s", result.Entries, filepath.Base(path))))
	return nil
}

// exportedLabel renders the export time in local time, or the raw stamp
// when it does not parse.
func exportedLabel(doc backup.Document) string {
	ts, err := doc.ExportTime()
	if err != nil {
		return doc.ExportedAt
	}
	return ts.Local().Format("2006-01-02 15:04")
}
