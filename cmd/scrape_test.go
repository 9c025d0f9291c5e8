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
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/blender-launcher/buildscout/pkg/constants"
)

var _ = Describe("Scrape", Label("scrape", "cmd"), func() {
	var buf *bytes.Buffer
	BeforeEach(func() {
		rootCmd = NewRootCmd()
		_ = NewScrapeCmd(rootCmd)
		buf = new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
	})
	AfterEach(func() {
		viper.Reset()
	})
	It("Succeeds quietly when every source is disabled", Label("flags"), func() {
		_, _, err := executeCommandC(rootCmd, "scrape", "--no-stable", "--no-automated", "--no-community")
		Expect(err).To(BeNil())
		Expect(buf.String()).To(BeEmpty())
	})
	It("Errors out requesting an archive without the automated source", Label("flags"), func() {
		_, _, err := executeCommandC(rootCmd, "scrape", "--daily-archive", "--no-automated")
		Expect(err).ToNot(BeNil())
		Expect(buf.String()).To(ContainSubstring("Usage:"))
		Expect(err.Error()).To(ContainSubstring("'daily-archive' requires the automated source"))
	})
	It("Errors out on an unparseable minimum version", Label("flags"), func() {
		_, _, err := executeCommandC(rootCmd, "scrape", "--min-version", "not.a.version")
		Expect(err).ToNot(BeNil())
		Expect(buf.String()).To(ContainSubstring("Usage:"))
		Expect(err.Error()).To(ContainSubstring("parsing minimum version"))
	})
	It("Errors out on an invalid platform", Label("flags"), func() {
		_, _, err := executeCommandC(rootCmd, "scrape", "--platform", "linux/sparc")
		Expect(err).ToNot(BeNil())
		Expect(buf.String()).To(ContainSubstring("Usage:"))
		Expect(err.Error()).To(ContainSubstring("invalid arch"))
	})

	Describe("Against a release archive", func() {
		var srv *httptest.Server
		var cacheDir string
		var folderHits atomic.Int32

		BeforeEach(func() {
			folderHits.Store(0)
			var err error
			cacheDir, err = os.MkdirTemp("", "buildscout")
			Expect(err).ShouldNot(HaveOccurred())

			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/":
					fmt.Fprint(w, `<html><body><pre>`+
						`<a href="Blender4.1/">Blender4.1/</a>                26-Mar-2024 10:57       -`+"\n"+
						`</pre></body></html>`)
				case "/Blender4.1/":
					folderHits.Add(1)
					fmt.Fprint(w, `<html><body><pre>`+
						`<a href="blender-4.1.0-linux-x64.tar.xz">blender-4.1.0-linux-x64.tar.xz</a>  26-Mar-2024 09:00  272M`+"\n"+
						`<a href="blender-4.1.0-linux-x64.tar.xz.sha256">blender-4.1.0-linux-x64.tar.xz.sha256</a>  26-Mar-2024 09:00  97`+"\n"+
						`</pre></body></html>`)
				case "/Blender4.1/blender-4.1.0-linux-x64.tar.xz":
					w.Header().Set("Last-Modified", "Tue, 26 Mar 2024 09:00:00 GMT")
					w.Header().Set("Content-Length", "285212672")
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))

			os.Setenv("BUILDSCOUT_STABLE_URL", srv.URL+"/")
		})
		AfterEach(func() {
			os.Unsetenv("BUILDSCOUT_STABLE_URL")
			srv.Close()
			os.RemoveAll(cacheDir)
		})
		It("Prints discovered builds and reuses the cache on a second run", func() {
			_, _, err := executeCommandC(rootCmd, "scrape",
				"--no-automated", "--no-community",
				"--platform", "linux/amd64", "--cache-dir", cacheDir)
			Expect(err).To(BeNil())
			line := fmt.Sprintf("4.1.0\tstable\t2024-03-26T09:00:00Z\t%s/Blender4.1/blender-4.1.0-linux-x64.tar.xz", srv.URL)
			Expect(buf.String()).To(ContainSubstring(line))
			Expect(folderHits.Load()).To(Equal(int32(1)))

			// The folder snapshot is persisted for the next run
			_, err = os.Stat(filepath.Join(cacheDir, constants.StableCacheFile))
			Expect(err).ShouldNot(HaveOccurred())

			// An unchanged folder is served from the cache, not the network
			_, _, err = executeCommandC(rootCmd, "scrape",
				"--no-automated", "--no-community",
				"--platform", "linux/amd64", "--cache-dir", cacheDir)
			Expect(err).To(BeNil())
			Expect(strings.Count(buf.String(), line)).To(Equal(2))
			Expect(folderHits.Load()).To(Equal(int32(1)))
		})
	})
})
