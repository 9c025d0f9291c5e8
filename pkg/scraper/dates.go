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
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layouts seen in the wild on the release archive and in response
// headers. Tried before falling back to heuristic parsing.
var knownDateLayouts = []string{
	"02-Jan-2006 15:04",
	"02-Jan-2006 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseLenientDate reads the human formatted dates found in directory
// listings and response headers. Values without an explicit offset are
// taken as UTC.
func ParseLenientDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range knownDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date.UTC(), nil
		}
	}
	date, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date '%s': %w", value, err)
	}
	return date.UTC(), nil
}
