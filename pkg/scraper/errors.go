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

import "errors"

// ErrListingExhausted reports that the stable source's index listed no
// recognizable release folders at all, meaning the whole source is
// unusable for this run rather than a single folder being skipped.
var ErrListingExhausted = errors.New("no release folders found in listing")

// ErrCacheWrite reports that a source finished crawling but its cache
// could not be persisted, so the next run will scrape from scratch.
var ErrCacheWrite = errors.New("failed writing cache")
