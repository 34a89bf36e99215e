// Package server provides HTTP routing, middleware and the mixtape API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method-qualified patterns.
//
// # API Handlers
//
// Each handler implements [Handler], which extends the stdlib handler
// interface with [Handler.Routes], so a handler encapsulates its own route
// definitions:
//
//   - [AuthHandler]: POST /api/register, POST /api/login. The password
//     field is an opaque hash produced by the client; the server stores and
//     compares it verbatim and never sees the plaintext.
//   - [PlaylistHandler]: GET /api/playlists/{username}, POST /api/playlists.
//     The whole-collection endpoints the sync layer round-trips.
//   - [UploadHandler]: POST /api/upload. Single audio attachment, stored
//     with a timestamp-prefixed name and served back under /uploads/.
//   - [ProxyHandler]: GET /api/youtube/search, GET /api/youtube/videos.
//     Proxied so the API key stays server-side.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback for the
// CLI's `auth youtube` flow. It validates the state parameter, exchanges the
// code for a token and sends the result through a channel; only one callback
// is processed to prevent replay.
package server
