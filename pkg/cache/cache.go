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

// Package cache persists the last observed state of remote version
// folders, so unchanged folders are never scraped twice.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
	"github.com/blender-launcher/buildscout/pkg/utils"
)

// FolderSnapshot is the cached state of one remote version folder. The
// asset list is always the one scraped under ModifiedDate, never a mix
// of scrapes taken at different times.
type FolderSnapshot struct {
	Assets       []v1.BuildRecord
	ModifiedDate time.Time
}

// Cache maps parsed versions to folder snapshots. One instance belongs
// to exactly one source adapter for the duration of a run.
type Cache struct {
	folders map[string]*FolderSnapshot
	dirty   bool
}

func New() *Cache {
	return &Cache{folders: map[string]*FolderSnapshot{}}
}

// Load reads a cache file. Missing, unreadable or malformed files are
// not errors, they produce an empty cache so the adapter scrapes from
// scratch.
func Load(fs v1.FS, logger v1.Logger, path string) *Cache {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("No cache file at %s, starting empty", path)
		} else {
			logger.Errorf("Failed reading cache %s: %s", path, err.Error())
		}
		return New()
	}

	wire := &wireCache{}
	if err = json.Unmarshal(data, wire); err != nil {
		logger.Errorf("Failed to load cache %s: %s", path, err.Error())
		return New()
	}

	c := New()
	for key, snapshot := range wire.Folders {
		if _, err = semver.NewVersion(key); err != nil {
			logger.Errorf("Failed to load cache %s: bad version key %q: %s", path, key, err.Error())
			return New()
		}
		c.folders[key] = snapshot
	}
	logger.Debugf("Loaded cache from %s", path)
	return c
}

func (c *Cache) Contains(ver *semver.Version) bool {
	_, ok := c.folders[ver.String()]
	return ok
}

func (c *Cache) Get(ver *semver.Version) *FolderSnapshot {
	return c.folders[ver.String()]
}

// NewEntry registers an empty snapshot under the given version and
// returns it for mutation. Creating an entry alone does not dirty the
// cache, only a scrape that fills it does.
func (c *Cache) NewEntry(ver *semver.Version, defaultTime time.Time) *FolderSnapshot {
	folder := &FolderSnapshot{Assets: []v1.BuildRecord{}, ModifiedDate: defaultTime}
	c.folders[ver.String()] = folder
	return folder
}

// Versions lists the cached version keys in ascending order.
func (c *Cache) Versions() []string {
	collection := make(semver.Collection, 0, len(c.folders))
	for key := range c.folders {
		ver, err := semver.NewVersion(key)
		if err != nil {
			continue
		}
		collection = append(collection, ver)
	}
	sort.Sort(collection)

	keys := make([]string, len(collection))
	for i, ver := range collection {
		keys[i] = ver.String()
	}
	return keys
}

func (c *Cache) Dirty() bool {
	return c.dirty
}

func (c *Cache) MarkDirty() {
	c.dirty = true
}

// Save serializes the whole mapping. Callers invoke it at most once per
// run and only when the cache is dirty.
func (c *Cache) Save(fs v1.FS, path string) error {
	data, err := json.Marshal(&wireCache{Folders: c.folders})
	if err != nil {
		return fmt.Errorf("serializing cache: %w", err)
	}

	err = utils.MkdirAll(fs, filepath.Dir(path), constants.DirPerm)
	if err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	err = fs.WriteFile(path, data, constants.FilePerm)
	if err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}

	c.dirty = false
	return nil
}

type wireCache struct {
	Folders map[string]*FolderSnapshot `json:"folders"`
}

type wireRecord struct {
	Version          string    `json:"version"`
	Hash             *string   `json:"hash"`
	Timestamp        string    `json:"timestamp"`
	Branch           v1.Branch `json:"branch"`
	CustomExecutable *string   `json:"custom_executable"`
}

func (f *FolderSnapshot) MarshalJSON() ([]byte, error) {
	pairs := make([][2]interface{}, 0, len(f.Assets))
	for _, build := range f.Assets {
		rec := wireRecord{
			Version:   build.Version,
			Timestamp: build.Timestamp.UTC().Format(time.RFC3339),
			Branch:    build.Branch,
		}
		if build.Hash != "" {
			hash := build.Hash
			rec.Hash = &hash
		}
		if build.CustomExecutable != "" {
			exe := build.CustomExecutable
			rec.CustomExecutable = &exe
		}
		pairs = append(pairs, [2]interface{}{build.Link, rec})
	}

	return json.Marshal(struct {
		Assets       [][2]interface{} `json:"assets"`
		ModifiedDate string           `json:"modified_date"`
	}{pairs, f.ModifiedDate.UTC().Format(time.RFC3339)})
}

func (f *FolderSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Assets       []json.RawMessage `json:"assets"`
		ModifiedDate string            `json:"modified_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	modified, err := parseISOTime(raw.ModifiedDate)
	if err != nil {
		return fmt.Errorf("parsing modified_date: %w", err)
	}

	assets := make([]v1.BuildRecord, 0, len(raw.Assets))
	for _, rawPair := range raw.Assets {
		var pair []json.RawMessage
		if err = json.Unmarshal(rawPair, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("asset entry is not a [link, record] pair")
		}

		var link string
		if err = json.Unmarshal(pair[0], &link); err != nil {
			return err
		}
		rec := wireRecord{}
		if err = json.Unmarshal(pair[1], &rec); err != nil {
			return err
		}
		timestamp, err := parseISOTime(rec.Timestamp)
		if err != nil {
			return fmt.Errorf("parsing asset timestamp: %w", err)
		}

		build := v1.BuildRecord{
			Link:      link,
			Version:   rec.Version,
			Timestamp: timestamp,
			Branch:    rec.Branch,
		}
		if rec.Hash != nil {
			build.Hash = *rec.Hash
		}
		if rec.CustomExecutable != nil {
			build.CustomExecutable = *rec.CustomExecutable
		}
		assets = append(assets, build)
	}

	f.Assets = assets
	f.ModifiedDate = modified
	return nil
}

// parseISOTime accepts the RFC 3339 timestamps written by Save plus the
// offset-free ISO form older cache files carry.
func parseISOTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
