package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/worthy/internal/backup"
)

// stdio is the file argument meaning standard input or output.
const stdio = "-"

type ExportCmd struct {
	Output string `short:"o" help:"Write the document to this file, or '-' for stdout. Defaults to a new file in the backups directory."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	var dest string
	doc, err := ctx.Backups.ExportTo(func(doc backup.Document) error {
		switch c.Output {
		case "":
			path, err := ctx.Manager.CreateBackup(doc)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			dest = path
			return nil
		case stdio:
			return doc.Encode(ctx.out())
		}

		var buf bytes.Buffer
		if err := doc.Encode(&buf); err != nil {
			return err
		}
		if dir := filepath.Dir(c.Output); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return fmt.Errorf("failed to create export directory: %w", err)
			}
		}
		if err := os.WriteFile(c.Output, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		dest = c.Output
		return nil
	})
	if err != nil {
		return err
	}
	if dest != "" {
		ctx.println(successStyle.Render(fmt.Sprintf("✓ Exported %d entries to %s", len(doc.Entries), dest)))
	}
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export document to import, or '-' for stdin."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	var r io.Reader
	if c.File == stdio {
		r = ctx.in()
	} else {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	result, err := ctx.Backups.ImportReader(r)
	if err != nil {
		return err
	}

	ctx.println(successStyle.Render(fmt.Sprintf("✓ Imported %d entries", result.Entries)))
	if result.SettingsReplaced {
		ctx.println("Settings replaced from the document.")
	}
	return nil
}
