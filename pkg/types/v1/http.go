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

package v1

import "net/http"

// Response carries the already-consumed result of one request, so callers
// never manage connection lifetimes.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
	// URL is the effective URL after any redirects.
	URL string
}

type HTTPClient interface {
	Request(method string, url string) (*Response, error)
}
