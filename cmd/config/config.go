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

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/mapstructure"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blender-launcher/buildscout/pkg/config"
	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
	"github.com/blender-launcher/buildscout/pkg/utils"
	"github.com/blender-launcher/buildscout/pkg/version"
	"github.com/blender-launcher/buildscout/pkg/webdav"
)

var decodeHook = viper.DecodeHook(
	mapstructure.ComposeDecodeHookFunc(
		UnmarshalerHook(),
		versionHook(),
	),
)

// ReadConfigScrape assembles the configuration for a single scrape run.
// Values are layered, weakest first: built-in defaults, an optional
// env-format defaults file, buildscout.yaml in configDir, BUILDSCOUT_*
// environment variables and finally any flag set on the command line.
// The returned config is never nil, also on error, so callers can keep
// using its logger.
func ReadConfigScrape(configDir string, flags *pflag.FlagSet) (*v1.ScrapeConfig, error) {
	cfg := config.NewScrapeConfig(
		config.WithLogger(v1.NewLogger()),
	)

	configLogger(cfg.Logger, cfg.Fs)

	vip := viper.GetViper()
	loadEnvDefaults(vip, cfg.Fs, configDir)

	if err := merge(vip, configDir); err != nil {
		cfg.Logger.Errorf("Error merging config files: %s", err)
		return cfg, err
	}

	bindGivenFlags(vip, flags)
	// --min-version is the command line spelling of the min-stable-version key
	if flags != nil {
		if f := flags.Lookup("min-version"); f != nil && f.Changed {
			_ = vip.BindPFlag("min-stable-version", f)
		}
	}
	viperReadEnv(vip, constants.GetScrapeKeyEnvMap())

	err := vip.Unmarshal(cfg, setDecoder, decodeHook)
	if err != nil {
		cfg.Logger.Errorf("Error unmarshalling scrape config: %s", err)
		return cfg, err
	}

	// The WebDAV client depends on the resolved community endpoint, so it
	// is built once all layers are merged, unless a client was injected.
	if cfg.DavClient == nil {
		cfg.DavClient = webdav.NewClient(cfg.CommunityURL+constants.CommunityDavPath, cfg.CommunityToken)
	}

	cfg.Logger.Debugf("Full config loaded: %s", litter.Sdump(cfg))

	return cfg, nil
}

func configLogger(log v1.Logger, vfs v1.FS) {
	// Set debug level
	if viper.GetBool("debug") {
		log.SetLevel(v1.DebugLevel())
	}

	// Set formatter so both file and stdout format are equal
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableColors:    false,
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	// Logfile
	logfile := viper.GetString("logfile")
	if logfile != "" {
		o, err := vfs.OpenFile(logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FilePerm)

		if err != nil {
			log.Errorf("Could not open %s for logging to file: %s", logfile, err.Error())
		}

		if viper.GetBool("quiet") { // if quiet is set, only set the log to the file
			log.SetOutput(o)
		} else { // else set it to both stdout and the file
			mw := io.MultiWriter(os.Stdout, o)
			log.SetOutput(mw)
		}
	} else { // no logfile
		if viper.GetBool("quiet") { // quiet is enabled so discard all logging
			log.SetOutput(io.Discard)
		} else { // default to stdout
			log.SetOutput(os.Stdout)
		}
	}
}

// merge layers the yaml config file from configDir, if any, on top of
// whatever is already set on the viper instance.
func merge(vip *viper.Viper, configDir string) error {
	vip.AddConfigPath(configDir)
	vip.SetConfigType("yaml")
	vip.SetConfigName(constants.ConfigFile)
	err := vip.MergeInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// loadEnvDefaults seeds viper defaults from an optional KEY=value file
// next to the yaml config, so a deployment can pin endpoint overrides
// without shipping a full config file.
func loadEnvDefaults(vip *viper.Viper, fs v1.FS, configDir string) {
	env, err := utils.LoadEnvFile(fs, filepath.Join(configDir, constants.EnvDefaultsFile))
	if err != nil {
		return
	}
	for key, name := range constants.GetScrapeKeyEnvMap() {
		if value, ok := env[name]; ok {
			vip.SetDefault(key, value)
		}
	}
}

// bindGivenFlags binds to viper only the flags the user actually set, so
// flag defaults never shadow values coming from files or environment.
func bindGivenFlags(vip *viper.Viper, flagSet *pflag.FlagSet) {
	if flagSet != nil {
		flagSet.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = vip.BindPFlag(f.Name, f)
			}
		})
	}
}

// viperReadEnv registers the BUILDSCOUT_* environment variables for every
// scrape config key. Dashed keys are not picked up by AutomaticEnv alone,
// so each one is bound explicitly.
func viperReadEnv(vip *viper.Viper, keyMaps map[string]string) {
	replacer := strings.NewReplacer("-", "_")
	vip.SetEnvKeyReplacer(replacer)
	vip.SetEnvPrefix("BUILDSCOUT")
	vip.AutomaticEnv() // read in environment variables that match

	for key, name := range keyMaps {
		_ = vip.BindEnv(key, fmt.Sprintf("BUILDSCOUT_%s", name))
	}
}

// Unmarshaler is implemented by config types that decode themselves from
// an arbitrary yaml, env or flag value.
type Unmarshaler interface {
	CustomUnmarshal(interface{}) (bool, error)
}

// UnmarshalerHook runs the CustomUnmarshal method of target types during
// viper unmarshalling, so values such as "linux/arm64" decode into their
// structured form.
func UnmarshalerHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Value, to reflect.Value) (interface{}, error) {
		// get the destination object address if it is not passed by reference
		if to.CanAddr() {
			to = to.Addr()
		}
		// If the destination implements the unmarshaling interface
		u, ok := to.Interface().(Unmarshaler)
		if !ok {
			return from.Interface(), nil
		}
		// If it is nil and a pointer, create and assign the target value first
		if to.IsNil() && to.Type().Kind() == reflect.Ptr {
			to.Set(reflect.New(to.Type().Elem()))
			u = to.Interface().(Unmarshaler)
		}
		// Call the custom unmarshaling method
		cont, err := u.CustomUnmarshal(from.Interface())
		if cont {
			// Continue the normal mapstructure flow
			return from.Interface(), nil
		}
		// Skip the normal mapstructure flow, the value was already decoded
		return to.Interface(), err
	}
}

// versionHook decodes version floor strings into semver values, treating
// an empty string as no minimum.
func versionHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Value, to reflect.Value) (interface{}, error) {
		if to.Type() != reflect.TypeOf(&semver.Version{}) && to.Type() != reflect.TypeOf(semver.Version{}) {
			return from.Interface(), nil
		}
		if from.Kind() != reflect.String {
			return from.Interface(), nil
		}
		raw := strings.TrimSpace(from.String())
		if raw == "" {
			return semver.New(0, 0, 0, "", ""), nil
		}
		ver, err := version.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing minimum version '%s': %w", raw, err)
		}
		return ver, nil
	}
}

func setDecoder(config *mapstructure.DecoderConfig) {
	// Make sure we zero fields before applying them, so stale values never
	// survive a layer that explicitly sets a key.
	config.ZeroFields = true
}
