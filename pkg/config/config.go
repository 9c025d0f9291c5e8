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

package config

import (
	"github.com/Masterminds/semver/v3"
	"github.com/twpayne/go-vfs"

	"github.com/blender-launcher/buildscout/pkg/constants"
	"github.com/blender-launcher/buildscout/pkg/http"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

type GenericOptions func(a *v1.Config) error

func WithFs(fs v1.FS) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Fs = fs
		return nil
	}
}

func WithLogger(logger v1.Logger) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Logger = logger
		return nil
	}
}

func WithClient(client v1.HTTPClient) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Client = client
		return nil
	}
}

func WithDavClient(client v1.DavClient) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.DavClient = client
		return nil
	}
}

func WithPlatform(platform string) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		p, err := v1.ParsePlatform(platform)
		r.Platform = p
		return err
	}
}

func NewConfig(opts ...GenericOptions) *v1.Config {
	log := v1.NewLogger()

	defaultPlatform, err := v1.NewDefaultPlatform()
	if err != nil {
		log.Errorf("error parsing default platform: %s", err.Error())
		return nil
	}

	c := &v1.Config{
		Fs:       vfs.OSFS,
		Logger:   log,
		Client:   http.NewClient(),
		Platform: defaultPlatform,
	}
	for _, o := range opts {
		err := o(c)
		if err != nil {
			log.Errorf("error applying config option: %s", err.Error())
			return nil
		}
	}

	// The WebDAV client is wired late, once endpoint overrides are
	// resolved, unless a fake was injected through the options.

	return c
}

// NewScrapeConfig returns a scrape configuration with every source
// enabled and all endpoints pointing at their defaults.
func NewScrapeConfig(opts ...GenericOptions) *v1.ScrapeConfig {
	config := NewConfig(opts...)
	if config == nil {
		return nil
	}

	s := &v1.ScrapeConfig{
		MinStableVersion: semver.New(0, 0, 0, "", ""),
		ScrapeStable:     true,
		ScrapeAutomated:  true,
		ScrapeCommunity:  true,
		CacheDir:         constants.DefaultCacheDir(),
		StableURL:        constants.StableReleasesURL,
		BuilderURL:       constants.BuilderEndpointFmt,
		CommunityURL:     constants.CommunityBaseURL,
		CommunityToken:   constants.CommunityShareToken,
		Config:           *config,
	}
	return s
}
