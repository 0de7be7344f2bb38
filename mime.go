// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spafallback

import (
	"path"
	"strings"
)

// DefaultContentType is the content type for files whose extension isn't
// listed in the MIME table.
const DefaultContentType = "application/octet-stream"

// mimeTypes maps lowercase file extensions, including the leading ".", to
// content types. It is never modified after package initialization.
var mimeTypes = map[string]string{
	".html":  "text/html",
	".js":    "application/javascript",
	".css":   "text/css",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".txt":   "text/plain",
	".pdf":   "application/pdf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// ContentType returns the content type for the specified slash-separated file
// name, based on its (case-insensitive) extension. Unknown extensions yield
// DefaultContentType.
//
// Unlike mime.TypeByExtension, the result never depends on the MIME databases
// installed on the host.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return DefaultContentType
}
