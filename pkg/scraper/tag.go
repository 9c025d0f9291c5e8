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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
	"github.com/blender-launcher/buildscout/pkg/utils"
	"github.com/blender-launcher/buildscout/pkg/version"
)

// NewerReleaseTag returns the latest launcher release tag when it is
// semantically newer than the running version, or an empty string when
// current is already up to date.
func NewerReleaseTag(cfg *v1.ScrapeConfig, current string) (string, error) {
	tag, err := LatestReleaseTag(cfg)
	if err != nil {
		return "", err
	}

	latest, err := version.ParseExact(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return "", fmt.Errorf("parsing release tag '%s': %w", tag, err)
	}
	running, err := version.ParseExact(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", fmt.Errorf("parsing running version '%s': %w", current, err)
	}

	if latest.GreaterThan(running) {
		return tag, nil
	}
	return "", nil
}

// LatestReleaseTag looks up the newest launcher release tag, following
// the pre-release channel when configured.
func LatestReleaseTag(cfg *v1.ScrapeConfig) (string, error) {
	if cfg.PreRelease {
		return latestPreReleaseTag(cfg)
	}

	res, err := cfg.Client.Request(http.MethodGet, constants.LatestReleaseURL)
	if err != nil {
		return "", fmt.Errorf("fetching latest release: %w", err)
	}

	// The latest release page redirects to the tagged release, the tag
	// is the last segment of the effective URL.
	tag := res.URL[strings.LastIndex(res.URL, "/")+1:]
	if tag == "" {
		return "", fmt.Errorf("no tag in release URL '%s'", res.URL)
	}
	return tag, nil
}

// latestPreReleaseTag reads the full release listing and returns the
// highest tag among releases shipping a zip build for this platform.
func latestPreReleaseTag(cfg *v1.ScrapeConfig) (string, error) {
	res, err := cfg.Client.Request(http.MethodGet, constants.ReleasesAPIURL)
	if err != nil {
		return "", fmt.Errorf("fetching release listing: %w", err)
	}
	if res.Status != http.StatusOK {
		return "", fmt.Errorf("release listing answered status %d", res.Status)
	}

	var releases []struct {
		TagName string `json:"tag_name"`
		Assets  []struct {
			Name string `json:"name"`
		} `json:"assets"`
	}
	if err = json.Unmarshal(res.Body, &releases); err != nil {
		return "", fmt.Errorf("parsing release listing: %w", err)
	}

	token := strings.ToLower(platformAssetToken(cfg))

	var latest *semver.Version
	for _, release := range releases {
		for _, asset := range release.Assets {
			name := strings.ToLower(asset.Name)
			if !strings.HasSuffix(name, ".zip") || !strings.Contains(name, token) {
				continue
			}
			ver, err := version.ParseExact(strings.TrimPrefix(release.TagName, "v"))
			if err != nil {
				break
			}
			if latest == nil || ver.GreaterThan(latest) {
				latest = ver
			}
			break
		}
	}
	if latest == nil {
		return "", fmt.Errorf("no release with a %s build found", token)
	}
	return "v" + latest.String(), nil
}

// platformAssetToken is the platform word launcher release assets carry
// in their names. Linux hosts identifying as Ubuntu derivatives get a
// dedicated build.
func platformAssetToken(cfg *v1.ScrapeConfig) string {
	switch cfg.Platform.OS {
	case "windows":
		return "Windows"
	case "darwin":
		return "macOS"
	default:
		if hostLikeUbuntu(cfg.Fs) {
			return "Ubuntu"
		}
		return "Linux"
	}
}

func hostLikeUbuntu(fs v1.FS) bool {
	env, err := utils.LoadEnvFile(fs, constants.OSReleasePath)
	if err != nil {
		return false
	}
	for _, key := range []string{"ID", "ID_LIKE"} {
		if strings.Contains(strings.ToLower(env[key]), constants.Ubuntu) {
			return true
		}
	}
	return false
}
