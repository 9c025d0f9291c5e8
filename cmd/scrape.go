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
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blender-launcher/buildscout/cmd/config"
	buildscoutError "github.com/blender-launcher/buildscout/pkg/error"
	"github.com/blender-launcher/buildscout/pkg/scraper"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// NewScrapeCmd returns a new instance of the scrape subcommand and appends it to
// the root command. Discovered builds are printed to stdout as one tab
// separated line per record, in emission order.
func NewScrapeCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "scrape",
		Args:  cobra.ExactArgs(0),
		Short: "Discover builds from every enabled source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetDefault("quiet", true) // Prevents any other writes to stdout

			cfg, err := config.ReadConfigScrape(viper.GetString("config-dir"), cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("Error reading config: %s\n", err)
				return buildscoutError.NewFromError(err, buildscoutError.ReadingScrapeConfig)
			}

			if err := validateScrapeFlags(cfg.Logger, cmd.Flags()); err != nil {
				cfg.Logger.Errorf("Error reading scrape flags: %s\n", err)
				return buildscoutError.NewFromError(err, buildscoutError.ReadingScrapeFlags)
			}

			applySourceToggles(cmd.Flags(), cfg)

			// Set this after parsing of the flags, so it fails on parsing and prints usage properly
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true // Do not propagate errors down the line, we control them

			out := make(chan v1.BuildRecord)
			errCh := make(chan error, 1)
			go func() {
				errCh <- scraper.NewScraper(cfg).Run(cmd.Context(), out)
			}()

			count := 0
			for build := range out {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					build.Version, build.Branch, build.Timestamp.Format(time.RFC3339), build.Link)
				count++
			}

			if err := <-errCh; err != nil {
				cfg.Logger.Errorf("Scrape finished with errors: %s\n", err)
				return buildscoutError.NewFromError(err, scrapeExitCode(err))
			}
			cfg.Logger.Infof("Discovered %d builds", count)
			return nil
		},
	}
	root.AddCommand(c)
	addScrapeFlags(c)
	return c
}

func scrapeExitCode(err error) int {
	switch {
	case errors.Is(err, scraper.ErrListingExhausted):
		return buildscoutError.ListingExhausted
	case errors.Is(err, scraper.ErrCacheWrite):
		return buildscoutError.WriteCache
	default:
		return buildscoutError.ScrapeFailure
	}
}

// register the subcommand into rootCmd
var _ = NewScrapeCmd(rootCmd)
