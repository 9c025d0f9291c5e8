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
	"regexp"
	"strings"

	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// AssetFilter matches artifact names for one platform. RE2 has no
// lookahead, so names carrying the excluded substring are rejected in
// a separate step instead of inside the pattern.
type AssetFilter struct {
	pattern *regexp.Regexp
	exclude string
}

func (f AssetFilter) Match(name string) bool {
	if f.exclude != "" && strings.Contains(strings.ToLower(name), f.exclude) {
		return false
	}
	return f.pattern.MatchString(name)
}

// NewReleaseFilter returns the official artifact filter for a platform.
func NewReleaseFilter(platform *v1.Platform) AssetFilter {
	switch platform.OS {
	case "windows":
		return AssetFilter{pattern: compileName(constants.WindowsFilePattern)}
	case "darwin":
		return AssetFilter{pattern: compileName(constants.DarwinFilePattern)}
	default:
		return AssetFilter{
			pattern: compileName(constants.LinuxFilePattern),
			exclude: constants.LinuxFileExclude,
		}
	}
}

// NewCommunityFilter returns the Bforartists artifact filter for a
// platform.
func NewCommunityFilter(platform *v1.Platform) AssetFilter {
	switch platform.OS {
	case "windows":
		return AssetFilter{pattern: compileName(constants.CommunityWindowsPattern)}
	case "darwin":
		return AssetFilter{pattern: compileName(constants.CommunityDarwinPattern)}
	default:
		return AssetFilter{pattern: compileName(constants.CommunityLinuxPattern)}
	}
}

// Name patterns are matched case insensitively from the start of the
// file name.
func compileName(pattern string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("(?i)^%s", pattern))
}
