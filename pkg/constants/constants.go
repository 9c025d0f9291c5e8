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

package constants

import (
	"os"
	"path/filepath"
	"time"
)

const (
	AppName = "buildscout"

	StableReleasesURL   = "https://download.blender.org/release/"
	BuilderEndpointFmt  = "https://builder.blender.org/download/%s/?format=json&v=1"
	CommunityBaseURL    = "https://cloud.bforartists.de"
	CommunityDavPath    = "/public.php/webdav"
	CommunityShareToken = "JxCjbyt2fFcHjy4"

	ReleasesAPIURL   = "https://api.github.com/repos/Victor-IX/Blender-Launcher-V2/releases"
	LatestReleaseURL = "https://github.com/Victor-IX/Blender-Launcher-V2/releases/latest"

	ConfigFile      = "buildscout.yaml"
	EnvDefaultsFile = "defaults.conf"

	StableCacheFile    = "stable_cache.json"
	CommunityCacheFile = "bfa_cache.json"

	StableFolderPattern = `Blender(\d+\.\d+)`

	WindowsFilePattern = `blender-.+win.+64.+zip$`
	DarwinFilePattern  = `blender-.+(macOS|darwin).+dmg$`
	LinuxFilePattern   = `blender-.+lin.+64.+tar`
	LinuxFileExclude   = "sha256"

	CommunityWindowsPattern = `Bforartists-.+Windows.+zip`
	CommunityDarwinPattern  = `Bforartists-.+dmg$`
	CommunityLinuxPattern   = `Bforartists-.+tar.xz$`

	WindowsExecutable = "bforartists.exe"
	LinuxExecutable   = "bforartists"
	DarwinExecutable  = "Bforartists/Bforartists.app/Contents/MacOS/Bforartists"

	ArchiveSuffix = "archive"

	HTTPTimeout = 60

	FilePerm = os.FileMode(0644)
	DirPerm  = os.FileMode(0755)

	ArchAmd64 = "amd64"
	Archx86   = "x86_64"
	ArchArm64 = "arm64"

	OSReleasePath = "/etc/os-release"
	Ubuntu        = "ubuntu"
)

// UnixEpoch is the sentinel timestamp assigned to folder snapshots that
// have never been scraped. It can never equal a genuine listing date.
func UnixEpoch() time.Time {
	return time.Unix(0, 0).UTC()
}

// DefaultCacheDir returns the per-user directory holding the scraper
// cache files.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, AppName)
}

// GetScrapeKeyEnvMap returns environment variable bindings to ScrapeConfig data
func GetScrapeKeyEnvMap() map[string]string {
	return map[string]string{
		"platform":             "PLATFORM",
		"min-stable-version":   "MIN_STABLE_VERSION",
		"scrape-stable":        "SCRAPE_STABLE",
		"scrape-automated":     "SCRAPE_AUTOMATED",
		"scrape-community":     "SCRAPE_COMMUNITY",
		"daily-archive":        "DAILY_ARCHIVE",
		"experimental-archive": "EXPERIMENTAL_ARCHIVE",
		"patch-archive":        "PATCH_ARCHIVE",
		"pre-release":          "PRE_RELEASE",
		"cache-dir":            "CACHE_DIR",
		"stable-url":           "STABLE_URL",
		"builder-url":          "BUILDER_URL",
		"community-url":        "COMMUNITY_URL",
		"community-token":      "COMMUNITY_TOKEN",
	}
}
