package instance

import "os"

const fallbackID = "local"

// ID identifies the running process in logs: the platform dyno name when set,
// otherwise the hostname.
func ID() string {
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
