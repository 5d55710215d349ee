package utils

import "fmt"

const (
	Version = "0.3.2"
)

var (
	GitCommit = "UnKnown"
	BuildTime = "Unknown"
)

func GetVersion() string {
	return fmt.Sprintf("unet-submit Version: %s-%s\nBuild Time: %s", Version, GitCommit, BuildTime)
}

func VersionTemplate() string {
	return `{{.Version}}` + "\n"
}
