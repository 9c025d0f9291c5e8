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

package v1

import (
	"github.com/Masterminds/semver/v3"
)

// Config carries the collaborators every component works through, so
// alternative implementations can be injected in tests.
type Config struct {
	Logger    Logger
	Fs        FS
	Client    HTTPClient
	DavClient DavClient
	Platform  *Platform `yaml:"platform,omitempty" mapstructure:"platform"`
}

// ScrapeConfig is the full configuration of one crawl. It is built once
// before the run starts and never mutated afterwards.
type ScrapeConfig struct {
	// MinStableVersion is the floor below which stable release folders
	// are ignored. The zero version means no minimum.
	MinStableVersion *semver.Version `yaml:"min-stable-version,omitempty" mapstructure:"min-stable-version"`

	ScrapeStable    bool `yaml:"scrape-stable,omitempty" mapstructure:"scrape-stable"`
	ScrapeAutomated bool `yaml:"scrape-automated,omitempty" mapstructure:"scrape-automated"`
	ScrapeCommunity bool `yaml:"scrape-community,omitempty" mapstructure:"scrape-community"`

	DailyArchive        bool `yaml:"daily-archive,omitempty" mapstructure:"daily-archive"`
	ExperimentalArchive bool `yaml:"experimental-archive,omitempty" mapstructure:"experimental-archive"`
	PatchArchive        bool `yaml:"patch-archive,omitempty" mapstructure:"patch-archive"`

	// PreRelease selects the pre-release channel for the launcher
	// release tag check.
	PreRelease bool `yaml:"pre-release,omitempty" mapstructure:"pre-release"`

	CacheDir string `yaml:"cache-dir,omitempty" mapstructure:"cache-dir"`

	StableURL      string `yaml:"stable-url,omitempty" mapstructure:"stable-url"`
	BuilderURL     string `yaml:"builder-url,omitempty" mapstructure:"builder-url"`
	CommunityURL   string `yaml:"community-url,omitempty" mapstructure:"community-url"`
	CommunityToken string `yaml:"community-token,omitempty" mapstructure:"community-token"`

	// 'inline' and 'squash' labels ensure config fields
	// are embedded from a yaml and map PoV
	Config `yaml:",inline" mapstructure:",squash"`
}
