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
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	conf "github.com/blender-launcher/buildscout/pkg/config"
	"github.com/blender-launcher/buildscout/pkg/mocks"
	"github.com/blender-launcher/buildscout/pkg/scraper"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

var _ = Describe("AutomatedBuilds", Label("scraper", "automated"), func() {
	var config *v1.ScrapeConfig
	var client *mocks.FakeHTTPClient
	var memLog *bytes.Buffer

	const dailyURL = "https://builder.test/download/daily/?format=json&v=1"
	const experimentalURL = "https://builder.test/download/experimental/?format=json&v=1"
	const patchURL = "https://builder.test/download/patch/?format=json&v=1"

	newScraper := func() *scraper.Scraper { return scraper.NewScraper(config) }

	BeforeEach(func() {
		memLog = &bytes.Buffer{}
		client = mocks.NewFakeHTTPClient()
		config = conf.NewScrapeConfig(
			conf.WithLogger(v1.NewBufferLogger(memLog)),
			conf.WithClient(client),
			conf.WithPlatform("linux/amd64"),
		)
		config.ScrapeStable = false
		config.ScrapeCommunity = false
		config.BuilderURL = "https://builder.test/download/%s/?format=json&v=1"

		client.Respond(dailyURL, jsonResponse(`[]`))
		client.Respond(experimentalURL, jsonResponse(`[]`))
		client.Respond(patchURL, jsonResponse(`[]`))
	})

	It("emits matching architecture entries with the branch variant", func() {
		client.Respond(dailyURL, jsonResponse(`[
			{"platform": "linux", "architecture": "x86_64",
			 "file_name": "blender-4.2.0-alpha+main.07b4b1b9fb64-linux.x86_64-release.tar.xz",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "07b4b1b9fb64",
			 "url": "https://builder.test/daily/blender-4.2.0-alpha+main.07b4b1b9fb64-linux.x86_64-release.tar.xz",
			 "patch": null, "release_cycle": "alpha", "branch": "main"},
			{"platform": "linux", "architecture": "arm64",
			 "file_name": "blender-4.2.0-alpha+main.07b4b1b9fb64-linux.arm64-release.tar.xz",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "07b4b1b9fb64",
			 "url": "https://builder.test/daily/arm64.tar.xz",
			 "patch": null, "release_cycle": "alpha", "branch": "main"},
			{"platform": "windows", "architecture": "amd64",
			 "file_name": "blender-4.2.0-alpha+main.07b4b1b9fb64-windows.amd64-release.zip",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "07b4b1b9fb64",
			 "url": "https://builder.test/daily/windows.zip",
			 "patch": null, "release_cycle": "alpha", "branch": "main"}
		]`))

		builds, err := collectBuilds(newScraper())
		Expect(err).To(BeNil())
		Expect(builds).To(HaveLen(1))
		Expect(builds[0].Version).To(Equal("4.2.0-alpha"))
		Expect(builds[0].Branch).To(Equal(v1.DailyBranch))
		Expect(builds[0].Hash).To(Equal("07b4b1b9fb64"))
		Expect(builds[0].Link).To(ContainSubstring("x86_64-release.tar.xz"))
		Expect(builds[0].Timestamp).To(BeTemporally("==", time.Unix(1711445820, 0).UTC()))
	})

	It("falls back to platform matches and appends the architecture", func() {
		client.Respond(experimentalURL, jsonResponse(`[
			{"platform": "linux", "architecture": "arm64",
			 "file_name": "blender-4.2.0-npr-prototype.b94a433ca34f-linux.arm64-release.tar.xz",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "b94a433ca34f",
			 "url": "https://builder.test/experimental/arm64.tar.xz",
			 "patch": null, "release_cycle": "alpha", "branch": "npr-prototype"},
			{"platform": "linux", "architecture": "amd64",
			 "file_name": "blender-4.2.0-npr-prototype.b94a433ca34f-linux.amd64-release.tar.xz",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "b94a433ca34f",
			 "url": "https://builder.test/experimental/amd64.tar.xz",
			 "patch": null, "release_cycle": "alpha", "branch": "npr-prototype"}
		]`))

		builds, err := collectBuilds(newScraper())
		Expect(err).To(BeNil())
		Expect(builds).To(HaveLen(2))
		Expect(builds[0].Version).To(Equal("4.2.0-npr-prototype-arm64"))
		Expect(builds[1].Version).To(Equal("4.2.0-npr-prototype-x86-64"))
		Expect(builds[0].Branch).To(Equal(v1.ExperimentalBranch))
		Expect(memLog.String()).To(ContainSubstring("No experimental builds for linux on x86_64"))
	})

	It("uses the patch identifier as the variant outside daily", func() {
		client.Respond(patchURL, jsonResponse(`[
			{"platform": "linux", "architecture": "x86_64",
			 "file_name": "blender-4.2.0-PR118796.f22bd1c90dc2-linux.x86_64-release.tar.xz",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "f22bd1c90dc2",
			 "url": "https://builder.test/patch/pr.tar.xz",
			 "patch": "PR118796", "release_cycle": "alpha", "branch": "main"}
		]`))

		builds, err := collectBuilds(newScraper())
		Expect(err).To(BeNil())
		Expect(builds).To(HaveLen(1))
		Expect(builds[0].Version).To(Equal("4.2.0-PR118796"))
		Expect(builds[0].Branch).To(Equal(v1.PatchBranch))
	})

	It("queries the archive listing when the toggle is set", func() {
		archiveURL := "https://builder.test/download/daily/archive/?format=json&v=1"
		config.DailyArchive = true
		client.Respond(archiveURL, jsonResponse(`[
			{"platform": "linux", "architecture": "x86_64",
			 "file_name": "blender-4.1.0-candidate+v41.e1743a0317bc-linux.x86_64-release.tar.xz",
			 "file_mtime": 1710155820, "version": "4.1.0", "hash": "e1743a0317bc",
			 "url": "https://builder.test/archive/blender-4.1.0-candidate.tar.xz",
			 "patch": null, "release_cycle": "candidate", "branch": "v41"}
		]`))

		builds, err := collectBuilds(newScraper())
		Expect(err).To(BeNil())
		Expect(builds).To(HaveLen(1))
		Expect(builds[0].Version).To(Equal("4.1.0-candidate"))
		Expect(builds[0].Branch).To(Equal(v1.DailyBranch))
		Expect(client.WasCalledWith("GET", archiveURL)).To(BeTrue())
		Expect(client.WasCalledWith("GET", dailyURL)).To(BeFalse())
	})

	It("skips a branch whose listing does not parse and keeps going", func() {
		client.Respond(experimentalURL, htmlResponse(`<html>not json</html>`))
		client.Respond(patchURL, jsonResponse(`[
			{"platform": "linux", "architecture": "x86_64",
			 "file_name": "blender-4.2.0-PR118796.f22bd1c90dc2-linux.x86_64-release.tar.xz",
			 "file_mtime": 1711445820, "version": "4.2.0", "hash": "f22bd1c90dc2",
			 "url": "https://builder.test/patch/pr.tar.xz",
			 "patch": "PR118796", "release_cycle": null, "branch": null}
		]`))

		builds, err := collectBuilds(newScraper())
		Expect(err).To(BeNil())
		Expect(builds).To(HaveLen(1))
		Expect(builds[0].Branch).To(Equal(v1.PatchBranch))
		Expect(memLog.String()).To(ContainSubstring("Failed parsing experimental build listing"))
	})

	It("skips a branch whose endpoint is unreachable", func() {
		client.Fail(dailyURL)

		builds, err := collectBuilds(newScraper())
		Expect(err).To(BeNil())
		Expect(builds).To(BeEmpty())
		Expect(memLog.String()).To(ContainSubstring("Failed fetching daily builds"))
	})
})
