/*
Copyright © 2023 - 2026 The Blender Launcher Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/docker/go-units"

	"github.com/blender-launcher/buildscout/pkg/cache"
	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
	"github.com/blender-launcher/buildscout/pkg/version"
)

var stableFolderPattern = regexp.MustCompile(constants.StableFolderPattern)

// scrapeStableReleases walks the official release archive. The archive
// is an HTML directory listing of per-version folders, each folder page
// listing the artifact files. Folders whose listing date matches the
// cached one are served from the cache without touching the network
// again.
func (s *Scraper) scrapeStableReleases(ctx context.Context, out chan<- v1.BuildRecord) error {
	cfg := s.Config

	res, err := cfg.Client.Request(http.MethodGet, cfg.StableURL)
	if err != nil {
		s.Error("Failed fetching release index %s: %s", cfg.StableURL, err.Error())
		return nil
	}
	if res.Status != http.StatusOK {
		s.Error("Release index %s answered status %d", cfg.StableURL, res.Status)
		return nil
	}

	type releaseFolder struct {
		anchor Anchor
		ver    *semver.Version
	}

	folders := []releaseFolder{}
	for _, anchor := range ParseAnchors(res.Body) {
		match := stableFolderPattern.FindStringSubmatch(anchor.Href)
		if match == nil {
			continue
		}
		ver, err := version.Parse(match[1])
		if err != nil {
			s.Debug("Skipping release folder %s: %s", anchor.Href, err.Error())
			continue
		}
		folders = append(folders, releaseFolder{anchor, ver})
	}
	if len(folders) == 0 {
		return fmt.Errorf("%w at %s", ErrListingExhausted, cfg.StableURL)
	}

	filter := NewReleaseFilter(cfg.Platform)
	cachePath := filepath.Join(cfg.CacheDir, constants.StableCacheFile)
	store := cache.Load(cfg.Fs, cfg.Logger, cachePath)

	for _, folder := range folders {
		if err = ctx.Err(); err != nil {
			return err
		}
		if cfg.MinStableVersion != nil && folder.ver.LessThan(cfg.MinStableVersion) {
			continue
		}

		folderURL := joinURL(cfg.StableURL, folder.anchor.Href)

		observed, dateErr := folderListingDate(folder.anchor)
		if dateErr != nil {
			// Without a listing date there is nothing to compare the
			// cache against, scrape the folder outside of it.
			s.Debug("No listing date for %s: %s", folder.anchor.Href, dateErr.Error())
			links, err := s.fetchFolderLinks(folderURL, filter)
			if err != nil {
				s.Error("Failed listing %s: %s", folderURL, err.Error())
				continue
			}
			if !s.probeReleaseLinks(links, func(build v1.BuildRecord) bool {
				return emit(ctx, out, build)
			}) {
				return ctx.Err()
			}
			continue
		}

		var snapshot *cache.FolderSnapshot
		if store.Contains(folder.ver) {
			snapshot = store.Get(folder.ver)
		} else {
			snapshot = store.NewEntry(folder.ver, constants.UnixEpoch())
		}

		if snapshot.ModifiedDate.Equal(observed) {
			s.Debug("Skipping %s: unchanged since %s", folder.anchor.Href, observed)
			for _, build := range snapshot.Assets {
				if !emit(ctx, out, build) {
					return ctx.Err()
				}
			}
			continue
		}

		links, err := s.fetchFolderLinks(folderURL, filter)
		if err != nil {
			// The folder page could not be read, leave its snapshot
			// alone so the next run tries again.
			s.Error("Failed listing %s: %s", folderURL, err.Error())
			continue
		}

		assets := []v1.BuildRecord{}
		if !s.probeReleaseLinks(links, func(build v1.BuildRecord) bool {
			assets = append(assets, build)
			return emit(ctx, out, build)
		}) {
			return ctx.Err()
		}
		s.Debug("Caching %s: %s (previous was %s)", folder.anchor.Href, observed, snapshot.ModifiedDate)
		snapshot.Assets = assets
		snapshot.ModifiedDate = observed
		store.MarkDirty()
	}

	if store.Dirty() {
		if err = store.Save(cfg.Fs, cachePath); err != nil {
			return fmt.Errorf("%w for stable releases: %v", ErrCacheWrite, err)
		}
	}
	return nil
}

// fetchFolderLinks reads one release folder page and returns the
// absolute download links of artifacts built for the configured
// platform. On darwin the file pattern matches both architectures, so
// links missing the architecture marker are dropped here.
func (s *Scraper) fetchFolderLinks(folderURL string, filter AssetFilter) ([]string, error) {
	res, err := s.Config.Client.Request(http.MethodGet, folderURL)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, fmt.Errorf("status %d", res.Status)
	}

	archToken := ""
	if s.Config.Platform.OS == "darwin" {
		archToken = s.Config.Platform.ArchLinkToken()
	}

	links := []string{}
	for _, anchor := range ParseAnchors(res.Body) {
		if !filter.Match(anchor.Href) {
			continue
		}
		link := strings.TrimRight(joinURL(folderURL, anchor.Href), "/")
		if archToken != "" && !strings.Contains(link, archToken) {
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

// probeReleaseLinks probes every link and hands each reachable build to
// visit in listing order. Returns false when visit gave up.
func (s *Scraper) probeReleaseLinks(links []string, visit func(v1.BuildRecord) bool) bool {
	for _, link := range links {
		build, ok := s.probeReleaseLink(link)
		if !ok {
			continue
		}
		if !visit(build) {
			return false
		}
	}
	return true
}

// probeReleaseLink issues the single existence and metadata probe a
// candidate link gets. Unreachable links and links whose metadata does
// not parse are skipped.
func (s *Scraper) probeReleaseLink(link string) (v1.BuildRecord, bool) {
	res, err := s.Config.Client.Request(http.MethodHead, link)
	if err != nil {
		s.Error("Failed probing %s: %s", link, err.Error())
		return v1.BuildRecord{}, false
	}
	if res.Status != http.StatusOK {
		s.Debug("Skipping %s: status %d", link, res.Status)
		return v1.BuildRecord{}, false
	}

	stem := linkStem(link)
	ver, err := version.Find(stem)
	if err != nil {
		s.Error("Failed reading version from %s: %s", link, err.Error())
		return v1.BuildRecord{}, false
	}

	timestamp, err := ParseLenientDate(res.Headers.Get("Last-Modified"))
	if err != nil {
		s.Error("Failed reading modification time of %s: %s", link, err.Error())
		return v1.BuildRecord{}, false
	}

	if size := res.Headers.Get("Content-Length"); size != "" {
		if bytes, err := strconv.ParseInt(size, 10, 64); err == nil {
			s.Debug("Probed %s (%s)", path.Base(link), units.BytesSize(float64(bytes)))
		}
	}

	return v1.BuildRecord{
		Link:      link,
		Version:   ver.String(),
		Hash:      version.TrailingHash(stem),
		Timestamp: timestamp,
		Branch:    v1.StableBranch,
	}, true
}

// folderListingDate reads the date column following a folder anchor,
// which autoindex pages render as "26-Mar-2024 10:57       -".
func folderListingDate(anchor Anchor) (time.Time, error) {
	fields := strings.Fields(anchor.Tail)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return ParseLenientDate(strings.Join(fields, " "))
}

func joinURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return base
	}
	return baseURL.ResolveReference(refURL).String()
}

// linkStem is the file name of a link without its final extension,
// "blender-4.1.0-linux-x64.tar.xz" keeps its ".tar".
func linkStem(link string) string {
	name := path.Base(link)
	return strings.TrimSuffix(name, path.Ext(name))
}
