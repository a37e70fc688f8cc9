package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// releaseEndpoint is a var so tests can point it at a local server.
var releaseEndpoint = "https://api.github.com/repos/rootlab/vidscore/releases/latest"

const fetchTimeout = 5 * time.Second

// Release is the newest published build of vidscore.
type Release struct {
	Version string // tag with any leading "v" stripped
	Title   string
	Notes   string // release notes, markdown as published
	URL     string
}

// Latest fetches the newest published release. The current version is only
// used to identify the client in the request.
func Latest(currentVersion string) (Release, error) {
	req, err := http.NewRequest(http.MethodGet, releaseEndpoint, nil)
	if err != nil {
		return Release{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "vidscore/"+currentVersion)

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
		Body    string `json:"body"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Release{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.TagName == "" {
		return Release{}, fmt.Errorf("release has no tag")
	}

	return Release{
		Version: strings.TrimPrefix(payload.TagName, "v"),
		Title:   payload.Name,
		Notes:   strings.TrimSpace(payload.Body),
		URL:     payload.HTMLURL,
	}, nil
}

// NewerThan reports whether the release is strictly newer than the given
// version. Pre-release and build suffixes ("-dev", "+build5") are ignored;
// missing fields count as zero, so "1.0" and "1.0.0" compare equal.
func (r Release) NewerThan(current string) bool {
	return compareVersions(r.Version, strings.TrimPrefix(current, "v")) > 0
}

// compareVersions compares dotted numeric versions, returning -1, 0 or 1.
func compareVersions(a, b string) int {
	as := numericFields(a)
	bs := numericFields(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := fieldAt(as, i), fieldAt(bs, i)
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}

// numericFields splits a version into its numeric dotted fields, dropping
// pre-release/build metadata and anything non-numeric.
func numericFields(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var fields []int
	for _, part := range strings.Split(version, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		fields = append(fields, n)
	}
	return fields
}

func fieldAt(fields []int, i int) int {
	if i < len(fields) {
		return fields[i]
	}
	return 0
}
