package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"focusly/internal/ports"
)

// DefaultSearchURL is used when no search engine is configured
const DefaultSearchURL = "https://www.google.com/search?q=%s"

// Opener implements ports.QueryLauncher
type Opener struct {
	searchURL string
	run       func(name string, args ...string) error
}

var _ ports.QueryLauncher = (*Opener)(nil)

// NewOpener creates an opener for a search URL template containing one %s
func NewOpener(searchURL string) *Opener {
	if !strings.Contains(searchURL, "%s") {
		searchURL = DefaultSearchURL
	}
	return &Opener{
		searchURL: searchURL,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// OpenQuery opens the search results page for query
func (o *Opener) OpenQuery(query string) error {
	u, err := o.BuildURL(query)
	if err != nil {
		return err
	}
	name, args, err := openCommand(runtime.GOOS, u)
	if err != nil {
		return err
	}
	return o.run(name, args...)
}

// BuildURL returns the search URL for query
func (o *Opener) BuildURL(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("search query cannot be empty")
	}
	return fmt.Sprintf(o.searchURL, url.QueryEscape(query)), nil
}

func openCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
