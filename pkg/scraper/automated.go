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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
	"github.com/blender-launcher/buildscout/pkg/version"
)

// builderEntry is one artifact as described by the build server's JSON
// listing. Absent fields decode to empty strings.
type builderEntry struct {
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
	FileName     string `json:"file_name"`
	FileMtime    int64  `json:"file_mtime"`
	Version      string `json:"version"`
	Hash         string `json:"hash"`
	URL          string `json:"url"`
	Patch        string `json:"patch"`
	ReleaseCycle string `json:"release_cycle"`
	Branch       string `json:"branch"`
}

// scrapeAutomatedBuilds queries the build server's JSON listing for
// every automated branch, switching a branch to its archive listing
// when the matching toggle is set. The listings describe short lived
// artifacts, so this source never uses a cache.
func (s *Scraper) scrapeAutomatedBuilds(ctx context.Context, out chan<- v1.BuildRecord) error {
	cfg := s.Config

	branches := []struct {
		branch  v1.Branch
		archive bool
	}{
		{v1.DailyBranch, cfg.DailyArchive},
		{v1.ExperimentalBranch, cfg.ExperimentalArchive},
		{v1.PatchBranch, cfg.PatchArchive},
	}

	filter := NewReleaseFilter(cfg.Platform)

	for _, b := range branches {
		if err := ctx.Err(); err != nil {
			return err
		}

		branchPath := string(b.branch)
		if b.archive {
			branchPath += "/" + constants.ArchiveSuffix
		}
		listingURL := fmt.Sprintf(cfg.BuilderURL, branchPath)

		res, err := cfg.Client.Request(http.MethodGet, listingURL)
		if err != nil {
			s.Error("Failed fetching %s builds: %s", b.branch, err.Error())
			continue
		}
		if res.Status != http.StatusOK {
			s.Error("Build listing %s answered status %d", listingURL, res.Status)
			continue
		}

		var entries []builderEntry
		if err = json.Unmarshal(res.Body, &entries); err != nil {
			s.Error("Failed parsing %s build listing: %s", b.branch, err.Error())
			continue
		}

		// First pass keeps only artifacts of the exact architecture.
		archSpecific := false
		for _, entry := range entries {
			if entry.Platform != cfg.Platform.OS ||
				!strings.EqualFold(entry.Architecture, cfg.Platform.Arch) ||
				!filter.Match(entry.FileName) {
				continue
			}
			archSpecific = true
			build, ok := s.newBuilderRecord(entry, b.branch, true)
			if !ok {
				continue
			}
			if !emit(ctx, out, build) {
				return ctx.Err()
			}
		}
		if archSpecific {
			continue
		}

		// Nothing matched the architecture, fall back to every artifact
		// of the platform and keep the architecture visible in the
		// version instead.
		s.Warn("No %s builds for %s on %s, falling back to all architectures",
			b.branch, cfg.Platform.OS, cfg.Platform.Arch)
		for _, entry := range entries {
			if entry.Platform != cfg.Platform.OS || !filter.Match(entry.FileName) {
				continue
			}
			build, ok := s.newBuilderRecord(entry, b.branch, false)
			if !ok {
				continue
			}
			if !emit(ctx, out, build) {
				return ctx.Err()
			}
		}
	}
	return nil
}

// newBuilderRecord normalizes one listing entry. The variant folded
// into the version depends on the branch being queried: the patch
// identifier everywhere but daily, the release cycle on daily and the
// source branch name on experimental. When the artifact was accepted
// without an architecture match the architecture is appended so
// otherwise identical versions stay distinguishable.
func (s *Scraper) newBuilderRecord(entry builderEntry, branch v1.Branch, archSpecific bool) (v1.BuildRecord, bool) {
	ver, err := version.Parse(entry.Version)
	if err != nil {
		s.Error("Failed reading version of %s: %s", entry.FileName, err.Error())
		return v1.BuildRecord{}, false
	}

	variant := ""
	if entry.Patch != "" && branch != v1.DailyBranch {
		variant = entry.Patch
	}
	if entry.ReleaseCycle != "" && branch == v1.DailyBranch {
		variant = entry.ReleaseCycle
	}
	if entry.Branch != "" && branch == v1.ExperimentalBranch {
		variant = entry.Branch
	}

	if !archSpecific && entry.Architecture != "" {
		arch := entry.Architecture
		if arch == constants.ArchAmd64 {
			arch = constants.Archx86
		}
		variant += " | " + arch
	}

	return v1.BuildRecord{
		Link:      entry.URL,
		Version:   version.WithVariant(ver, variant).String(),
		Hash:      entry.Hash,
		Timestamp: time.Unix(entry.FileMtime, 0).UTC(),
		Branch:    branch,
	}, true
}
