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

// provides a custom error interface and exit codes to use on the buildscout CLI
package error

//
// Provided exit codes for buildscout

// To make it easy to generate them you have to respect the structure:
//
// comment that explains the error
// const NamedConstant = ERRORCODE

// Error reading the scrape config
const ReadingScrapeConfig = 10

// The stable source listed no recognizable release folders
const ListingExhausted = 11

// A source adapter failed while crawling
const ScrapeFailure = 12

// Error writing a cache file
const WriteCache = 13

// The release tag check failed
const TagCheckFailure = 14

// Error validating the scrape command flags
const ReadingScrapeFlags = 15

// Unknown error
const Unknown = 255
