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

package webdav

import (
	"fmt"
	gopath "path"

	"github.com/studio-b12/gowebdav"

	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

type Client struct {
	dav *gowebdav.Client
}

// NewClient connects to a public WebDAV share, authenticating with the
// share token as user name and an empty password.
func NewClient(uri, shareToken string) *Client {
	return &Client{dav: gowebdav.NewClient(uri, shareToken, "")}
}

func (c Client) List(dir string) ([]v1.DavEntry, error) {
	infos, err := c.dav.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing '%s': %w", dir, err)
	}

	entries := make([]v1.DavEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, v1.DavEntry{
			Path:     gopath.Join(dir, info.Name()),
			IsDir:    info.IsDir(),
			Modified: info.ModTime(),
		})
	}
	return entries, nil
}
