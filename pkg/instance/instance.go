package instance

import "os"

// GetID names the running process in logs: INSTANCE_ID, then the host name,
// then "api-0".
func GetID() string {
	if id := os.Getenv("INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "api-0"
}
