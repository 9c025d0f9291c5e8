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

package scraper_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs"
	"github.com/twpayne/go-vfs/vfst"

	conf "github.com/blender-launcher/buildscout/pkg/config"
	"github.com/blender-launcher/buildscout/pkg/constants"
	"github.com/blender-launcher/buildscout/pkg/mocks"
	"github.com/blender-launcher/buildscout/pkg/scraper"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

const releaseListing = `[
	{"tag_name": "v2.5.0-beta.1", "assets": [
		{"name": "Blender_Launcher_v2.5.0-beta.1_Ubuntu_x64.zip"},
		{"name": "Blender_Launcher_v2.5.0-beta.1_Windows_x64.zip"}
	]},
	{"tag_name": "v2.4.1", "assets": [
		{"name": "Blender_Launcher_v2.4.1_Linux_x64.zip"},
		{"name": "Blender_Launcher_v2.4.1_Windows_x64.zip"}
	]},
	{"tag_name": "v2.6.0", "assets": [
		{"name": "Blender_Launcher_v2.6.0_Windows_x64.zip"}
	]},
	{"tag_name": "nightly-build", "assets": [
		{"name": "Blender_Launcher_nightly-build_Linux_x64.zip"}
	]}
]`

var _ = Describe("LatestReleaseTag", Label("scraper", "tag"), func() {
	var config *v1.ScrapeConfig
	var client *mocks.FakeHTTPClient
	var fs vfs.FS
	var cleanup func()

	build := func(files map[string]interface{}, platform string) {
		var err error
		fs, cleanup, err = vfst.NewTestFS(files)
		Expect(err).To(BeNil())

		client = mocks.NewFakeHTTPClient()
		config = conf.NewScrapeConfig(
			conf.WithFs(fs),
			conf.WithLogger(v1.NewNullLogger()),
			conf.WithClient(client),
			conf.WithPlatform(platform),
		)
	}

	AfterEach(func() { cleanup() })

	It("reads the tag off the redirected latest release URL", func() {
		build(map[string]interface{}{}, "linux/amd64")
		client.Respond(constants.LatestReleaseURL, &v1.Response{
			Status: http.StatusOK,
			URL:    "https://github.com/Victor-IX/Blender-Launcher-V2/releases/tag/v2.4.1",
		})

		tag, err := scraper.LatestReleaseTag(config)
		Expect(err).To(BeNil())
		Expect(tag).To(Equal("v2.4.1"))
	})

	It("fails when the latest release cannot be fetched", func() {
		build(map[string]interface{}{}, "linux/amd64")
		client.Fail(constants.LatestReleaseURL)

		_, err := scraper.LatestReleaseTag(config)
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("fetching latest release"))
	})

	Context("on the pre-release channel", func() {
		It("returns the highest tag shipping a build for the platform", func() {
			build(map[string]interface{}{}, "linux/amd64")
			config.PreRelease = true
			client.Respond(constants.ReleasesAPIURL, jsonResponse(releaseListing))

			// Plain Linux hosts only match the Linux asset names, so the
			// Ubuntu-only beta does not qualify.
			tag, err := scraper.LatestReleaseTag(config)
			Expect(err).To(BeNil())
			Expect(tag).To(Equal("v2.4.1"))
		})

		It("answers to Ubuntu assets when the host is a derivative", func() {
			build(map[string]interface{}{
				"/etc/os-release": "NAME=\"Pop!_OS\"\nID=pop\nID_LIKE=\"ubuntu debian\"\n",
			}, "linux/amd64")
			config.PreRelease = true
			client.Respond(constants.ReleasesAPIURL, jsonResponse(releaseListing))

			tag, err := scraper.LatestReleaseTag(config)
			Expect(err).To(BeNil())
			Expect(tag).To(Equal("v2.5.0-beta.1"))
		})

		It("compares tags as versions, not strings", func() {
			build(map[string]interface{}{}, "windows/amd64")
			config.PreRelease = true
			client.Respond(constants.ReleasesAPIURL, jsonResponse(releaseListing))

			// 2.6.0 beats 2.5.0-beta.1 even though the beta was listed
			// first.
			tag, err := scraper.LatestReleaseTag(config)
			Expect(err).To(BeNil())
			Expect(tag).To(Equal("v2.6.0"))
		})

		It("fails when no release carries a matching build", func() {
			build(map[string]interface{}{}, "darwin/arm64")
			config.PreRelease = true
			client.Respond(constants.ReleasesAPIURL, jsonResponse(releaseListing))

			_, err := scraper.LatestReleaseTag(config)
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("no release with a macos build found"))
		})
	})

	Context("comparing against the running version", func() {
		BeforeEach(func() {
			build(map[string]interface{}{}, "linux/amd64")
			client.Respond(constants.LatestReleaseURL, &v1.Response{
				Status: http.StatusOK,
				URL:    "https://github.com/Victor-IX/Blender-Launcher-V2/releases/tag/v2.4.1",
			})
		})

		It("reports the tag when it is newer", func() {
			tag, err := scraper.NewerReleaseTag(config, "v2.3.0")
			Expect(err).To(BeNil())
			Expect(tag).To(Equal("v2.4.1"))
		})

		It("stays silent when already up to date", func() {
			tag, err := scraper.NewerReleaseTag(config, "v2.4.1")
			Expect(err).To(BeNil())
			Expect(tag).To(BeEmpty())
		})

		It("stays silent when running ahead of the published release", func() {
			tag, err := scraper.NewerReleaseTag(config, "v2.5.0-beta.1")
			Expect(err).To(BeNil())
			Expect(tag).To(BeEmpty())
		})

		It("fails on an unparseable running version", func() {
			_, err := scraper.NewerReleaseTag(config, "devbuild")
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("parsing running version"))
		})
	})
})
