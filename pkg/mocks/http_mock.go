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
	"net/http"

	v1 "github.com/blender-launcher/buildscout/pkg/types/v1"
)

// FakeHTTPClient is an implementation of the HTTPClient interface used for
// testing. Responses are canned per URL and every request is stored into
// ClientCalls for easy checking of what was called.
type FakeHTTPClient struct {
	ClientCalls []string
	Error       bool
	responses   map[string]*v1.Response
	failing     map[string]bool
}

func NewFakeHTTPClient() *FakeHTTPClient {
	return &FakeHTTPClient{
		responses: map[string]*v1.Response{},
		failing:   map[string]bool{},
	}
}

// Respond cans the response served for a URL, regardless of the method.
func (m *FakeHTTPClient) Respond(url string, response *v1.Response) {
	m.responses[url] = response
}

// Fail makes requests to the given URL fail at the transport level.
func (m *FakeHTTPClient) Fail(url string) {
	m.failing[url] = true
}

// Request serves the canned response for the URL and records the call.
// URLs without a canned response answer 404.
func (m *FakeHTTPClient) Request(method string, url string) (*v1.Response, error) {
	m.ClientCalls = append(m.ClientCalls, fmt.Sprintf("%s %s", method, url))
	if m.Error || m.failing[url] {
		return nil, errors.New("fake transport error")
	}

	response, ok := m.responses[url]
	if !ok {
		return &v1.Response{Status: http.StatusNotFound, Headers: http.Header{}, URL: url}, nil
	}
	if response.Headers == nil {
		response.Headers = http.Header{}
	}
	if response.URL == "" {
		response.URL = url
	}
	return response, nil
}

// WasCalledWith is a helper method to confirm that the client was called
// with the given method and url
func (m *FakeHTTPClient) WasCalledWith(method, url string) bool {
	for _, c := range m.ClientCalls {
		if c == fmt.Sprintf("%s %s", method, url) {
			return true
		}
	}
	return false
}

// CallCount returns how many requests were issued with the given method.
func (m *FakeHTTPClient) CallCount(method string) int {
	count := 0
	for _, c := range m.ClientCalls {
		if len(c) >= len(method) && c[:len(method)] == method {
			count++
		}
	}
	return count
}
