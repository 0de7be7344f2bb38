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
	"io/fs"
	"net/http"
	"path"
)

// DefaultIndex is the name of the default document served for the root path,
// for directories, and as the SPA fallback.
const DefaultIndex = "index.html"

// fallbackContentType is always used for the fallback document, regardless of
// its name.
const fallbackContentType = "text/html"

// Response describes the outcome of resolving a request path. It is a plain
// value, freshly created for each request.
type Response struct {
	Status      int    // HTTP status code: 200, 404, or 500.
	Body        []byte // file contents, fallback document, or error message.
	ContentType string // value for the Content-Type header.
	Name        string // unrooted name of the file served; empty for errors.
	Fallback    bool   // true if Body is the fallback document.
	Err         error  // cause of a 500 response, nil otherwise.
}

// Resolver maps request paths onto static assets inside an fs.FS, falling
// back to the index document whenever there is no matching asset. A Resolver
// is immutable and thus safe for concurrent use.
type Resolver struct {
	fsys  fs.FS
	index string // unrooted, cleaned name of the default document.
}

// ResolverOption sets optional properties at the time of creating a Resolver.
type ResolverOption func(*Resolver)

// WithIndex sets the name of the default document, instead of DefaultIndex.
// The name is sanitized into an unrooted, slash-separated path. The full path
// locates the fallback document relative to the root, while directories are
// served only the final element of it, so "web/index.html" makes "/docs"
// serve "docs/index.html".
func WithIndex(name string) ResolverOption {
	return func(r *Resolver) {
		if index := path.Clean("/" + name)[1:]; index != "" {
			r.index = index
		}
	}
}

// NewResolver returns a new Resolver serving static assets from the specified
// fs. In order to serve from a directory on the OS file system, use os.DirFS:
//
//	r := NewResolver(os.DirFS("./dist"))
//
// If fsys turns out to not be accessible, then all requests will result in
// either 404 or 500 responses.
func NewResolver(fsys fs.FS, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fsys:  fsys,
		index: DefaultIndex,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index returns the unrooted name of the default document.
func (r *Resolver) Index() string { return r.index }

// Resolve returns the response for the specified request path, which is
// always interpreted relative to the Resolver's fs.
//
//   - "/" serves the index document.
//   - a directory serves the index document inside it.
//   - a file serves its contents, with the content type derived from its
//     extension.
//   - a missing file or directory serves the index document from the root
//     as "text/html", or 404 if that is missing too.
//   - any other error is a 500, without any fallback.
func (r *Resolver) Resolve(requestPath string) Response {
	// Slapping "/" in front ensures that path.Clean removes any ".." elements
	// that would otherwise climb out of our fs.
	name := path.Clean("/" + requestPath)[1:]
	if name == "" {
		name = r.index
	}
	info, err := fs.Stat(r.fsys, name)
	if err == nil {
		if info.IsDir() {
			name = path.Join(name, path.Base(r.index))
		}
		var contents []byte
		if contents, err = fs.ReadFile(r.fsys, name); err == nil {
			return Response{
				Status:      http.StatusOK,
				Body:        contents,
				ContentType: ContentType(name),
				Name:        name,
			}
		}
	}
	if KindOf(err) != KindNotFound {
		return errorResponse(err)
	}
	return r.fallback()
}

// fallback returns the index document from the root, or 404 if that can't be
// read for whatever reason.
func (r *Resolver) fallback() Response {
	contents, err := fs.ReadFile(r.fsys, r.index)
	if err != nil {
		return notFoundResponse()
	}
	return Response{
		Status:      http.StatusOK,
		Body:        contents,
		ContentType: fallbackContentType,
		Name:        r.index,
		Fallback:    true,
	}
}
