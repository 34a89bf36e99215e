// YouTube Data API v3 [SearchService] implementation
//
// Response types based on https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mixtapehq/mixtape/internal/models"
	"github.com/mixtapehq/mixtape/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

const (
	defaultYTBaseURL = "https://www.googleapis.com/youtube/v3"

	// searchMaxResults matches the page size the search page displays.
	searchMaxResults = 12
)

// ytThumbnail represents a thumbnail variant in Data API responses.
type ytThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ytThumbnails struct {
	Default ytThumbnail `json:"default"`
	Medium  ytThumbnail `json:"medium"`
	High    ytThumbnail `json:"high"`
}

// ytSnippet carries the display metadata shared by search and videos responses.
type ytSnippet struct {
	Title        string       `json:"title"`
	ChannelTitle string       `json:"channelTitle"`
	Thumbnails   ytThumbnails `json:"thumbnails"`
}

func (s ytSnippet) thumbnailURL() string {
	if s.Thumbnails.Medium.URL != "" {
		return s.Thumbnails.Medium.URL
	}
	return s.Thumbnails.Default.URL
}

// YouTubeService implements [SearchService] against the YouTube Data API.
//
// Authenticates with an API key by default; OAuth2 can be configured as an
// alternative for quota attribution. Requests are rate limited so a burst of
// proxied searches cannot exhaust the daily quota.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      VideoCacher
}

// NewYouTubeService creates a new YouTube Data API service instance.
func NewYouTubeService(baseURL, apiKey string) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(8), 16),
	}
}

// Name returns the provider name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// SetCache attaches a metadata cache consulted before upstream calls.
func (y *YouTubeService) SetCache(cache VideoCacher) {
	y.cache = cache
}

// ConfigureOAuth prepares the OAuth2 authorization code flow.
func (y *YouTubeService) ConfigureOAuth(clientID, clientSecret, redirectURI string) {
	y.config = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}
}

// GetOAuthConfig returns the prepared OAuth2 config, or nil when OAuth is not configured.
func (y *YouTubeService) GetOAuthConfig() *oauth2.Config {
	return y.config
}

// GetAuthURL returns the OAuth2 authorization URL for user consent.
func (y *YouTubeService) GetAuthURL(state string) string {
	return y.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Authenticate installs an OAuth2 token for subsequent requests.
//
// When a token is set, requests carry a bearer token instead of the API key.
func (y *YouTubeService) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if y.config == nil {
		return fmt.Errorf("%w: OAuth not configured", shared.ErrAuthFailed)
	}
	if token == nil {
		return fmt.Errorf("%w: nil token", shared.ErrAuthFailed)
	}

	y.token = token
	y.httpClient = y.config.Client(ctx, token)
	return nil
}

// Search returns up to 12 candidate videos matching the free-text query.
//
// Calls GET /search?part=snippet&type=video on the Data API.
func (y *YouTubeService) Search(ctx context.Context, query string) ([]models.Video, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", shared.ErrInvalidArgument)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", searchMaxResults))
	params.Set("q", query)

	var resp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet ytSnippet `json:"snippet"`
		} `json:"items"`
	}

	if err := y.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSearchFailed, err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		video := models.Video{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Channel:      item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.thumbnailURL(),
		}
		videos = append(videos, video)
		y.cacheVideo(video)
	}

	return videos, nil
}

// Videos returns metadata for a batch of external video identifiers.
//
// Cached entries are served locally; only the misses go upstream via
// GET /videos?part=snippet.
func (y *YouTubeService) Videos(ctx context.Context, ids []string) ([]models.Video, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no video ids", shared.ErrInvalidArgument)
	}

	found := make(map[string]models.Video, len(ids))
	var misses []string

	for _, id := range ids {
		if y.cache != nil {
			if video, err := y.cache.Lookup(id); err == nil && video != nil {
				found[id] = *video
				continue
			}
		}
		misses = append(misses, id)
	}

	if len(misses) > 0 {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("id", strings.Join(misses, ","))

		var resp struct {
			Items []struct {
				ID      string    `json:"id"`
				Snippet ytSnippet `json:"snippet"`
			} `json:"items"`
		}

		if err := y.doRequest(ctx, "/videos?"+params.Encode(), &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		for _, item := range resp.Items {
			video := models.Video{
				VideoID:      item.ID,
				Title:        item.Snippet.Title,
				Channel:      item.Snippet.ChannelTitle,
				ThumbnailURL: item.Snippet.thumbnailURL(),
			}
			found[item.ID] = video
			y.cacheVideo(video)
		}
	}

	// Preserve the caller's id order; unknown ids are skipped, not errors.
	videos := make([]models.Video, 0, len(found))
	for _, id := range ids {
		if video, ok := found[id]; ok {
			videos = append(videos, video)
		}
	}

	return videos, nil
}

func (y *YouTubeService) cacheVideo(video models.Video) {
	if y.cache == nil {
		return
	}
	// Cache failures never fail the lookup path.
	_ = y.cache.CacheVideo(video)
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	apiURL := y.baseURL + endpoint
	if y.token == nil {
		if y.apiKey == "" {
			return shared.ErrMissingAPIKey
		}
		sep := "&"
		if !strings.Contains(endpoint, "?") {
			sep = "?"
		}
		apiURL += sep + "key=" + url.QueryEscape(y.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
