package syncer

import "fmt"

// Strategy selects which diff directions a pass runs and in what order.
// It is fixed at construction and never changes mid-sync.
type Strategy string

const (
	// UploadFirst runs the upload direction to completion, then the
	// download direction. This is the default.
	UploadFirst Strategy = "upload_first"

	// DownloadFirst runs the download direction first, then the upload.
	DownloadFirst Strategy = "download_first"

	// UploadOnly runs only the upload direction; the cloud is never
	// scanned for items newer than local.
	UploadOnly Strategy = "upload_only"

	// DownloadOnly runs only the download direction.
	DownloadOnly Strategy = "download_only"

	// Simultaneously runs both directions concurrently. There is no
	// ordering guarantee between the directions' individual transfers, but
	// both complete before the pass does.
	Simultaneously Strategy = "simultaneously"
)

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case UploadFirst, DownloadFirst, UploadOnly, DownloadOnly, Simultaneously:
		return Strategy(s), nil
	case "":
		return UploadFirst, nil
	default:
		return "", fmt.Errorf("syncer: unknown strategy %q", s)
	}
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	switch s {
	case UploadFirst, DownloadFirst, UploadOnly, DownloadOnly, Simultaneously:
		return true
	default:
		return false
	}
}

// uploads reports whether the strategy includes the upload direction.
func (s Strategy) uploads() bool {
	return s != DownloadOnly
}

// downloads reports whether the strategy includes the download direction.
func (s Strategy) downloads() bool {
	return s != UploadOnly
}
