package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// Viewer constants
const (
	MobileSuffix        = "/mobile"
	DefaultCheckTimeout = 5 * time.Second
)

// ErrNoContent is returned for items without a usable content URL
var ErrNoContent = errors.New("platform: item has no content url")

// ViewerTarget holds the content URL and the variant used when the primary
// one is refused
type ViewerTarget struct {
	Primary  string
	Fallback string
}

// ViewerURLs returns the viewer target for a content URL
func ViewerURLs(contentURL string) (ViewerTarget, error) {
	raw := strings.TrimSpace(contentURL)
	if raw == "" {
		return ViewerTarget{}, ErrNoContent
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ViewerTarget{}, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ViewerTarget{}, fmt.Errorf("%w: unsupported scheme %q", ErrNoContent, u.Scheme)
	}

	primary := u.String()
	return ViewerTarget{
		Primary:  primary,
		Fallback: strings.TrimRight(primary, "/") + MobileSuffix,
	}, nil
}

// Resolve picks the URL to open. The primary URL is used unless the server
// answers it with 403 Forbidden; unreachable hosts keep the primary URL so
// the viewer can report the failure itself.
func (t ViewerTarget) Resolve(ctx context.Context, client *http.Client) string {
	if client == nil {
		client = &http.Client{Timeout: DefaultCheckTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, t.Primary, nil)
	if err != nil {
		return t.Primary
	}
	resp, err := client.Do(req)
	if err != nil {
		return t.Primary
	}
	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden && t.Fallback != "" {
		return t.Fallback
	}
	return t.Primary
}

// OpenURL hands raw to the system browser through the Fyne app
func OpenURL(app fyne.App, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse url: %w", err)
	}
	if app == nil {
		return fmt.Errorf("no application to open %s", raw)
	}
	return app.OpenURL(u)
}
