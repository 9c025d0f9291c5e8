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

import "time"

// Branch categorizes a build. Patch and experimental records may carry a
// free form value such as a branch name or a patch identifier.
type Branch string

const (
	StableBranch       Branch = "stable"
	LTSBranch          Branch = "lts"
	DailyBranch        Branch = "daily"
	ExperimentalBranch Branch = "experimental"
	PatchBranch        Branch = "patch"
	BforartistsBranch  Branch = "bforartists"
)

// BuildRecord is the normalized metadata for one downloadable build
// artifact, regardless of which source produced it. Records are value
// types and are never mutated after construction.
type BuildRecord struct {
	Link    string
	Version string
	// Hash is the short commit hash embedded in the artifact name, empty
	// when the source provides none.
	Hash      string
	Timestamp time.Time
	Branch    Branch
	// CustomExecutable is the relative path of the binary to launch when
	// it differs from the platform default, empty otherwise.
	CustomExecutable string
}
