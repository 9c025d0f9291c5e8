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

// Package version turns the loosely formatted version strings found in
// artifact names, URLs and API fields into semantic versions.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	searchPattern    = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)
	hexToken         = regexp.MustCompile(`^[0-9a-fA-F]{12}$`)
	tokenSeparators  = regexp.MustCompile(`[^0-9A-Za-z]+`)
	illegalTagRunes  = regexp.MustCompile(`[^0-9A-Za-z.-]+`)
	redundantHyphens = regexp.MustCompile(`-{2,}`)
)

// Parse reads a dotted numeric version, defaulting missing components to
// zero, so "4.0" parses to 4.0.0.
func Parse(s string) (*semver.Version, error) {
	ver, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", s, err)
	}
	return ver, nil
}

// ParseExact reads a strict major.minor.patch version with no defaulting.
func ParseExact(s string) (*semver.Version, error) {
	ver, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", s, err)
	}
	return ver, nil
}

// Find scans the whole string for the first version-like token, so the
// version can be pulled out of an artifact name or URL stem. Callers are
// expected to skip the resource when no token is found.
func Find(s string) (*semver.Version, error) {
	token := searchPattern.FindString(s)
	if token == "" {
		return nil, fmt.Errorf("no version token found in %q", s)
	}
	return Parse(token)
}

// WithVariant folds a free form qualifier into the version's prerelease
// after sanitizing it, keeping otherwise identical versions
// distinguishable. Empty or unsanitizable variants leave the version
// unchanged.
func WithVariant(ver *semver.Version, variant string) *semver.Version {
	tag := Sanitize(variant)
	if tag == "" {
		return ver
	}

	tagged, err := ver.SetPrerelease(tag)
	if err != nil {
		return ver
	}
	return &tagged
}

// Sanitize rewrites a variant into a legal prerelease tag: runs of
// characters outside the allowed alphabet collapse to one hyphen and
// dangling separators are trimmed.
func Sanitize(variant string) string {
	tag := illegalTagRunes.ReplaceAllString(variant, "-")
	tag = redundantHyphens.ReplaceAllString(tag, "-")
	return strings.Trim(tag, "-.")
}

// TrailingHash returns the last 12 character hex token of a name, or an
// empty string when it carries none.
func TrailingHash(s string) string {
	hash := ""
	for _, token := range tokenSeparators.Split(s, -1) {
		if hexToken.MatchString(token) {
			hash = token
		}
	}
	return hash
}
