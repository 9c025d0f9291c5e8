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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/blender-launcher/buildscout/pkg/scraper"
)

var _ = Describe("ParseLenientDate", Label("scraper", "dates"), func() {
	It("reads directory listing dates as UTC", func() {
		date, err := scraper.ParseLenientDate("26-Mar-2024 10:57")
		Expect(err).To(BeNil())
		Expect(date).To(BeTemporally("==", time.Date(2024, 3, 26, 10, 57, 0, 0, time.UTC)))
	})

	It("reads last modified response headers", func() {
		date, err := scraper.ParseLenientDate("Tue, 26 Mar 2024 10:57:00 GMT")
		Expect(err).To(BeNil())
		Expect(date).To(BeTemporally("==", time.Date(2024, 3, 26, 10, 57, 0, 0, time.UTC)))
	})

	It("falls back to heuristic parsing for other formats", func() {
		date, err := scraper.ParseLenientDate("2024-03-26 10:57:00")
		Expect(err).To(BeNil())
		Expect(date).To(BeTemporally("==", time.Date(2024, 3, 26, 10, 57, 0, 0, time.UTC)))
	})

	It("tolerates surrounding whitespace", func() {
		date, err := scraper.ParseLenientDate("  26-Mar-2024 10:57  ")
		Expect(err).To(BeNil())
		Expect(date.IsZero()).To(BeFalse())
	})

	It("rejects empty and senseless input", func() {
		_, err := scraper.ParseLenientDate("")
		Expect(err).ToNot(BeNil())

		_, err = scraper.ParseLenientDate("-")
		Expect(err).ToNot(BeNil())
	})
})
