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

	"github.com/hashicorp/go-multierror"

	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// Scraper represents the struct that will run the discovery from start to finish
type Scraper struct {
	Config *v1.ScrapeConfig
}

func NewScraper(config *v1.ScrapeConfig) *Scraper {
	return &Scraper{Config: config}
}

func (s *Scraper) Info(msg string, args ...interface{}) {
	s.Config.Logger.Infof(msg, args...)
}

func (s *Scraper) Debug(msg string, args ...interface{}) {
	s.Config.Logger.Debugf(msg, args...)
}

func (s *Scraper) Warn(msg string, args ...interface{}) {
	s.Config.Logger.Warnf(msg, args...)
}

func (s *Scraper) Error(msg string, args ...interface{}) {
	s.Config.Logger.Errorf(msg, args...)
}

// Run crawls every enabled source in a fixed order and sends each
// discovered build to out as soon as it is normalized. The channel is
// closed before returning, also on error. Failures in one source do
// not stop the remaining ones, all errors are collected and returned
// as a single aggregate.
//
// Cancellation is coarse grained, the context is only checked between
// sources and between release folders, an in-flight request always
// runs to completion.
func (s *Scraper) Run(ctx context.Context, out chan<- v1.BuildRecord) error {
	defer close(out)

	sources := []struct {
		name    string
		enabled bool
		scrape  func(context.Context, chan<- v1.BuildRecord) error
	}{
		{"stable", s.Config.ScrapeStable, s.scrapeStableReleases},
		{"automated", s.Config.ScrapeAutomated, s.scrapeAutomatedBuilds},
		{"community", s.Config.ScrapeCommunity, s.scrapeCommunityBuilds},
	}

	var errs *multierror.Error
	for _, source := range sources {
		if !source.enabled {
			s.Debug("Skipping %s builds", source.name)
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}
		s.Info("Scraping %s builds", source.name)
		if err := source.scrape(ctx, out); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("scraping %s builds: %w", source.name, err))
		}
	}
	return errs.ErrorOrNil()
}

// emit forwards one build to the consumer, giving up if the context is
// cancelled while the send is blocked.
func emit(ctx context.Context, out chan<- v1.BuildRecord, build v1.BuildRecord) bool {
	select {
	case out <- build:
		return true
	case <-ctx.Done():
		return false
	}
}
