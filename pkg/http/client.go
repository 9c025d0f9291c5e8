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

package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blender-launcher/buildscout/pkg/constants"
	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// Listing pages and API documents are small, responses above this size
// are truncated.
const maxResponseBytes = 32 << 20

type Client struct {
	client *http.Client
}

func NewClient() *Client {
	return &Client{client: &http.Client{Timeout: time.Second * constants.HTTPTimeout}}
}

// Request performs one round trip and consumes the whole answer, so
// callers never manage the connection. Redirects are followed and the
// returned response carries the effective URL.
func (c Client) Request(method string, url string) (*v1.Response, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request to '%s': %w", method, url, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting '%s': %w", url, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from '%s': %w", url, err)
	}

	return &v1.Response{
		Status:  res.StatusCode,
		Headers: res.Header,
		Body:    body,
		URL:     res.Request.URL.String(),
	}, nil
}
