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
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/blender-launcher/buildscout/pkg/cache"
	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
	"github.com/blender-launcher/buildscout/pkg/version"
)

// scrapeCommunityBuilds walks the Bforartists public WebDAV share. The
// share root holds one directory per release, named with a trailing
// exact version such as "Bforartists 4.1.0". Directory modification
// times drive the cache, a directory is only relisted when the share
// reports it strictly newer than the snapshot.
func (s *Scraper) scrapeCommunityBuilds(ctx context.Context, out chan<- v1.BuildRecord) error {
	cfg := s.Config
	if cfg.DavClient == nil {
		return fmt.Errorf("no WebDAV client configured")
	}

	entries, err := cfg.DavClient.List("")
	if err != nil {
		return fmt.Errorf("listing community share: %w", err)
	}

	filter := NewCommunityFilter(cfg.Platform)
	executable := communityExecutable(cfg.Platform)
	cachePath := filepath.Join(cfg.CacheDir, constants.CommunityCacheFile)
	store := cache.Load(cfg.Fs, cfg.Logger, cachePath)

	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir {
			continue
		}

		fields := strings.Fields(path.Base(entry.Path))
		if len(fields) == 0 {
			continue
		}
		ver, err := version.ParseExact(fields[len(fields)-1])
		if err != nil {
			continue
		}

		var snapshot *cache.FolderSnapshot
		if store.Contains(ver) {
			snapshot = store.Get(ver)
		} else {
			snapshot = store.NewEntry(ver, constants.UnixEpoch())
		}

		if !entry.Modified.After(snapshot.ModifiedDate) {
			s.Debug("Skipping %s: %s", entry.Path, entry.Modified)
			for _, build := range snapshot.Assets {
				if !emit(ctx, out, build) {
					return ctx.Err()
				}
			}
			continue
		}

		files, err := cfg.DavClient.List(entry.Path)
		if err != nil {
			// Listing failed, keep the snapshot as it was so the next
			// run tries again.
			s.Error("Failed listing %s: %s", entry.Path, err.Error())
			continue
		}

		assets := []v1.BuildRecord{}
		for _, file := range files {
			if file.IsDir || !filter.Match(path.Base(file.Path)) {
				continue
			}
			if file.Modified.IsZero() {
				continue
			}
			build := v1.BuildRecord{
				Link:             communityDownloadLink(cfg.CommunityURL, cfg.CommunityToken, file.Path),
				Version:          ver.String(),
				Timestamp:        file.Modified,
				Branch:           v1.BforartistsBranch,
				CustomExecutable: executable,
			}
			assets = append(assets, build)
			if !emit(ctx, out, build) {
				return ctx.Err()
			}
		}
		snapshot.Assets = assets
		snapshot.ModifiedDate = entry.Modified
		store.MarkDirty()
	}

	if store.Dirty() {
		if err = store.Save(cfg.Fs, cachePath); err != nil {
			return fmt.Errorf("%w for community builds: %v", ErrCacheWrite, err)
		}
	}
	return nil
}

// communityDownloadLink builds the public share download URL of a file,
// escaping the folder and file names which routinely carry spaces.
func communityDownloadLink(base, token, filePath string) string {
	dir, name := path.Split(filePath)

	query := url.Values{}
	query.Set("path", "/"+strings.TrimSuffix(dir, "/"))
	query.Set("files", name)

	return fmt.Sprintf("%s/index.php/s/%s/download?%s", base, token, query.Encode())
}

func communityExecutable(platform *v1.Platform) string {
	switch platform.OS {
	case "windows":
		return constants.WindowsExecutable
	case "darwin":
		return constants.DarwinExecutable
	default:
		return constants.LinuxExecutable
	}
}
