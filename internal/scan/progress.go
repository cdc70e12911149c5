package scan

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles int)

	// OnFileScanned is called after each file completes, successfully or not.
	OnFileScanned(scannedFiles, totalFiles int, path string)

	// OnComplete is called when the scan finishes.
	OnComplete(report *Report)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet or --json).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int)                      {}
func (n *NoOpProgressReporter) OnFileScanned(scannedFiles, totalFiles int, path string) {}
func (n *NoOpProgressReporter) OnComplete(report *Report)                               {}
