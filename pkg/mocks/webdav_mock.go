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

package mocks

import (
	"errors"
	"fmt"

	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// FakeDavClient is an implementation of the DavClient interface used for
// testing. Listings are canned per directory and every call is stored
// into ListCalls.
type FakeDavClient struct {
	Listings  map[string][]v1.DavEntry
	ListCalls []string
	Error     bool
}

func NewFakeDavClient() *FakeDavClient {
	return &FakeDavClient{Listings: map[string][]v1.DavEntry{}}
}

func (m *FakeDavClient) List(dir string) ([]v1.DavEntry, error) {
	m.ListCalls = append(m.ListCalls, dir)
	if m.Error {
		return nil, errors.New("fake webdav error")
	}

	entries, ok := m.Listings[dir]
	if !ok {
		return nil, fmt.Errorf("fake webdav: no listing for '%s'", dir)
	}
	return entries, nil
}
