// Package services defines clients for the external collaborators of the
// playlist manager.
//
//   - [YouTubeService] : YouTube Data API v3 client used by the server-side
//     search proxy (API key or OAuth2 authentication, rate limited)
//   - [APIService] : raw HTTP client for the mixtape server's own JSON API,
//     used by the CLI and the sync layer
package services
