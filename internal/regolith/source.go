// Package regolith supplies landing-site mineralogy to the balance engine.
package regolith

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/marsloop/internal/balance"
)

// ErrNotFound is returned when a source has no profile for a site.
var ErrNotFound = errors.New("regolith profile not found")

var siteKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Source resolves a site key to its profile.
type Source interface {
	Profile(ctx context.Context, site string) (balance.RegolithProfile, error)
}

// NormalizeSite lower-cases and validates a site key.
func NormalizeSite(site string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(site))
	if key == "" {
		return DefaultSite, nil
	}
	if !siteKeyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid site %q", site)
	}
	return key, nil
}

// FileSource reads regolith_<site>.json files from a directory.
type FileSource struct {
	Dir string
}

// FileName is the data file name for a site key.
func FileName(site string) string {
	return "regolith_" + site + ".json"
}

// Profile loads and decodes the site file.
func (s FileSource) Profile(_ context.Context, site string) (balance.RegolithProfile, error) {
	key, err := NormalizeSite(site)
	if err != nil {
		return balance.RegolithProfile{}, err
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, FileName(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return balance.RegolithProfile{}, ErrNotFound
		}
		return balance.RegolithProfile{}, fmt.Errorf("read regolith file: %w", err)
	}

	var p balance.RegolithProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return balance.RegolithProfile{}, fmt.Errorf("decode regolith file %s: %w", FileName(key), err)
	}
	return p, nil
}

// Sites lists the site keys that have a data file.
func (s FileSource) Sites() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "regolith_*.json"))
	if err != nil {
		return nil, fmt.Errorf("list regolith files: %w", err)
	}

	sites := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), "regolith_"), ".json")
		if siteKeyPattern.MatchString(key) {
			sites = append(sites, key)
		}
	}
	return sites, nil
}

// HTTPSource queries a running regolith service.
type HTTPSource struct {
	BaseURL string
	HTTP    *http.Client
}

// Profile calls GET /api/regolith?site=.
func (s HTTPSource) Profile(ctx context.Context, site string) (balance.RegolithProfile, error) {
	key, err := NormalizeSite(site)
	if err != nil {
		return balance.RegolithProfile{}, err
	}

	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := strings.TrimRight(s.BaseURL, "/") + "/api/regolith?site=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return balance.RegolithProfile{}, fmt.Errorf("build regolith request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return balance.RegolithProfile{}, fmt.Errorf("fetch regolith profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return balance.RegolithProfile{}, fmt.Errorf("fetch regolith profile: unexpected status %d", resp.StatusCode)
	}

	var p balance.RegolithProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return balance.RegolithProfile{}, fmt.Errorf("decode regolith profile: %w", err)
	}
	return p, nil
}

// Catalog is an in-memory source keyed by site.
type Catalog map[string]balance.RegolithProfile

// Profile returns the catalog entry for site.
func (c Catalog) Profile(_ context.Context, site string) (balance.RegolithProfile, error) {
	key, err := NormalizeSite(site)
	if err != nil {
		return balance.RegolithProfile{}, err
	}
	p, ok := c[key]
	if !ok {
		return balance.RegolithProfile{}, ErrNotFound
	}
	return p, nil
}

// Chain tries each source in order and returns the first hit.
type Chain []Source

// Profile returns the first profile found; ErrNotFound if none has it.
func (c Chain) Profile(ctx context.Context, site string) (balance.RegolithProfile, error) {
	var errs []error
	for _, src := range c {
		p, err := src.Profile(ctx, site)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return balance.RegolithProfile{}, errors.Join(errs...)
	}
	return balance.RegolithProfile{}, ErrNotFound
}

// Lookup resolves the profile for a regolith type. Types without a measured
// site, lookup errors and timeouts all yield nil, which the engine treats as
// "no profile".
func Lookup(ctx context.Context, src Source, t balance.RegolithType, timeout time.Duration, logger *zap.Logger) *balance.RegolithProfile {
	site, ok := t.Site()
	if !ok || src == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		p   balance.RegolithProfile
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		p, err := src.Profile(ctx, site)
		done <- outcome{p, err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			logger.Warn("regolith profile unavailable", zap.String("site", site), zap.Error(o.err))
			return nil
		}
		return &o.p
	case <-ctx.Done():
		logger.Warn("regolith profile lookup timed out", zap.String("site", site), zap.Error(ctx.Err()))
		return nil
	}
}
