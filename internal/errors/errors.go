package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/worthy/internal/backup"
	"github.com/julianstephens/worthy/internal/journal"
	"github.com/julianstephens/worthy/internal/lock"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns a suggestion for resolving a known failure, or "".
func Hint(err error) string {
	var importErr *backup.ImportError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lock.ErrLocked):
		return "another worthy process is using this journal; close it and try again"
	case errors.Is(err, storage.ErrStorageUnavailable):
		return "check that the --data path is writable"
	case errors.Is(err, backup.ErrImportFormatInvalid):
		return "the file is not a worthy export document; nothing was imported"
	case errors.As(err, &importErr):
		return fmt.Sprintf("%d of %d entries were imported before the failure; re-running the import is safe", importErr.Applied, importErr.Total)
	case errors.Is(err, journal.ErrInvalidEntry):
		return "an entry needs an event, evidence and a mood score between 0 and 100"
	}
	return ""
}

// Report writes the formatted error and its hint to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		os.Exit(1)
	}
}
