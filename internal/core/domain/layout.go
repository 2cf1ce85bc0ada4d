package domain

import "path/filepath"

const (
	// GcxDirName is the name of the internal metadata directory.
	GcxDirName = ".gcx"

	// StoreDirName is the name of the artifact store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "gcx.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// BasisFileExt is the extension of basis artifact files.
	BasisFileExt = ".g6"

	// MatrixFileExt is the extension of operator matrix files (SMS format).
	MatrixFileExt = ".sms"

	// RankFileExt is the extension of rank artifact files.
	RankFileExt = ".rank"

	// CohomologyFileName is the name of the assembled dimension table.
	CohomologyFileName = "cohomology.txt"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultGcxPath returns the default root directory for gcx metadata.
func DefaultGcxPath() string {
	return GcxDirName
}

// DefaultStorePath returns the default path for the artifact store.
// It joins .gcx and store.
func DefaultStorePath() string {
	return filepath.Join(GcxDirName, StoreDirName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .gcx and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(GcxDirName, DebugLogFile)
}
