package utils

const (
	DefaultConfigDir   = "/etc/unet-submit/"
	DefaultHistoryPath = ".unet-submit/history.json"

	// Job id placeholder substituted by the scheduler in log paths.
	JobIdPlaceholder = "%j"
)
