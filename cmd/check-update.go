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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blender-launcher/buildscout/cmd/config"
	"github.com/blender-launcher/buildscout/internal/version"
	buildscoutError "github.com/blender-launcher/buildscout/pkg/error"
	"github.com/blender-launcher/buildscout/pkg/scraper"
)

// NewCheckUpdateCmd returns a new instance of the check-update subcommand and
// appends it to the root command. It prints the newer launcher release tag to
// stdout, or nothing when the running version is current.
func NewCheckUpdateCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "check-update",
		Args:  cobra.ExactArgs(0),
		Short: "Check for a newer launcher release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetDefault("quiet", true) // Prevents any other writes to stdout

			cfg, err := config.ReadConfigScrape(viper.GetString("config-dir"), cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("Error reading config: %s\n", err)
				return buildscoutError.NewFromError(err, buildscoutError.ReadingScrapeConfig)
			}

			cmd.SilenceUsage = true
			cmd.SilenceErrors = true // Do not propagate errors down the line, we control them

			tag, err := scraper.NewerReleaseTag(cfg, version.Get().Version)
			if err != nil {
				cfg.Logger.Errorf("Error checking the latest release: %s\n", err)
				return buildscoutError.NewFromError(err, buildscoutError.TagCheckFailure)
			}
			if tag == "" {
				cfg.Logger.Infof("Already up to date")
				return nil
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tag)
			return err
		},
	}
	root.AddCommand(c)
	c.Flags().Bool("pre-release", false, "Track pre-release launcher builds")
	return c
}

// register the subcommand into rootCmd
var _ = NewCheckUpdateCmd(rootCmd)
