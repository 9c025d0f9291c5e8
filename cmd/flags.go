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

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// addPlatformFlags adds the platform flag for scrape commands
func addPlatformFlags(cmd *cobra.Command) {
	cmd.Flags().String("platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), "Platform to discover builds for")
}

// addSourceFlags adds the toggles disabling individual build sources
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-stable", false, "Skip the stable releases source")
	cmd.Flags().Bool("no-automated", false, "Skip the daily/experimental/patch build server source")
	cmd.Flags().Bool("no-community", false, "Skip the Bforartists community source")
}

// addArchiveFlags adds the toggles including archived automated branches
func addArchiveFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("daily-archive", false, "Include archived daily builds")
	cmd.Flags().Bool("experimental-archive", false, "Include archived experimental builds")
	cmd.Flags().Bool("patch-archive", false, "Include archived patch builds")
}

// addScrapeFlags adds all the flags of the scrape command
func addScrapeFlags(cmd *cobra.Command) {
	addPlatformFlags(cmd)
	addSourceFlags(cmd)
	addArchiveFlags(cmd)
	cmd.Flags().String("min-version", "", "Ignore stable releases older than this version (e.g. '3.6')")
	cmd.Flags().String("cache-dir", "", "Directory holding the scrape caches")
}

// applySourceToggles folds the --no-* flags into the source switches once
// the layered config is resolved.
func applySourceToggles(flags *pflag.FlagSet, cfg *v1.ScrapeConfig) {
	if noStable, _ := flags.GetBool("no-stable"); noStable {
		cfg.ScrapeStable = false
	}
	if noAutomated, _ := flags.GetBool("no-automated"); noAutomated {
		cfg.ScrapeAutomated = false
	}
	if noCommunity, _ := flags.GetBool("no-community"); noCommunity {
		cfg.ScrapeCommunity = false
	}
}

// validateScrapeFlags is a helper call to check all the flags for the scrape command
func validateScrapeFlags(log v1.Logger, flags *pflag.FlagSet) error {
	noAutomated, _ := flags.GetBool("no-automated")
	for _, archive := range []string{"daily-archive", "experimental-archive", "patch-archive"} {
		enabled, _ := flags.GetBool(archive)
		if enabled && noAutomated {
			return fmt.Errorf("'%s' requires the automated source, remove 'no-automated'", archive)
		}
	}

	noStable, _ := flags.GetBool("no-stable")
	minVersion, _ := flags.GetString("min-version")
	if minVersion != "" && noStable {
		log.Warnf("'min-version' has no effect when the stable source is disabled")
	}
	return nil
}
