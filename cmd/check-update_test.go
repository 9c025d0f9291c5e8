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
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"
)

var _ = Describe("CheckUpdate", Label("check-update", "cmd"), func() {
	BeforeEach(func() {
		rootCmd = NewRootCmd()
		_ = NewCheckUpdateCmd(rootCmd)
	})
	AfterEach(func() {
		viper.Reset()
	})
	It("Errors out on an invalid platform override", Label("flags"), func() {
		os.Setenv("BUILDSCOUT_PLATFORM", "linux/sparc")
		defer os.Unsetenv("BUILDSCOUT_PLATFORM")
		_, _, err := executeCommandC(rootCmd, "check-update")
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("invalid arch"))
	})
	It("Rejects positional arguments", Label("args"), func() {
		_, _, err := executeCommandC(rootCmd, "check-update", "v2.0.0")
		Expect(err).ToNot(BeNil())
	})
})
