package http

import "strings"

// ExtractPlaceIDFromPath pulls the place id out of /api/places/{placeId}.
func ExtractPlaceIDFromPath(path string) (string, bool) {
	const prefix = "/api/places/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	parts := strings.Split(remaining, "/")
	if len(parts) == 1 && parts[0] != "" && parts[0] != "user" {
		return parts[0], true
	}

	return "", false
}

// ExtractUserIDFromPath pulls the user id out of /api/places/user/{userId}.
func ExtractUserIDFromPath(path string) (string, bool) {
	const prefix = "/api/places/user/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	parts := strings.Split(remaining, "/")
	if len(parts) == 1 && parts[0] != "" {
		return parts[0], true
	}

	return "", false
}
