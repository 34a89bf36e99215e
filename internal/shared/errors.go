package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing YouTube API key")

	// Validation errors: surfaced immediately, never retried
	ErrEmptyName         = fmt.Errorf("playlist name required")
	ErrDuplicatePlaylist = fmt.Errorf("playlist already exists")
	ErrInvalidRating     = fmt.Errorf("rating must be between 1 and 5")
	ErrMissingField      = fmt.Errorf("missing required field")
	ErrDuplicateUser     = fmt.Errorf("username already exists")
	ErrInvalidLogin      = fmt.Errorf("invalid credentials")

	// Network errors: logged, in-memory state is kept as-is
	ErrSyncFailed         = fmt.Errorf("playlist sync failed")
	ErrUploadFailed       = fmt.Errorf("upload failed")
	ErrSearchFailed       = fmt.Errorf("search request failed")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Not-found errors: treated as a no-op by list rendering
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrSongNotFound     = fmt.Errorf("song not found")

	// Player errors
	ErrEmptyQueue = fmt.Errorf("nothing to play")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	ErrTimeout = fmt.Errorf("operation timed out")
)
