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
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// baseRe matches the base element in index.html in order to allow us to
// rewrite the base the SPA is served from.
//
// Please note: "*?" instead of "*" ensures that our irregular expression
// doesn't get too greedy, gobbling much more than it should until the last(!)
// empty element.
var baseRe = regexp.MustCompile(`(<base href=").*?("\s*/?>)`)

// Handler implements an http.Handler that serves static assets from an fs.FS,
// serving the index document instead whenever a request path doesn't match
// any asset. Only the request's URL path is taken into account; method and
// query are ignored.
type Handler struct {
	resolver      *Resolver
	resolverOpts  []ResolverOption
	log           *slog.Logger
	indexRewriter IndexRewriter // optional user function to rewrite the index document.
}

// HandlerOption sets optional properties at the time of creating a Handler.
type HandlerOption func(*Handler)

// IndexRewriter rewrites (parts) of the index document contents to be
// delivered to a requesting client. It can be optionally activated using the
// WithIndexRewriter option when creating a new Handler.
type IndexRewriter func(r *http.Request, index string) string

// WithIndexRewriter sets the specified IndexRewriter that gets called before
// delivering the root index document to requesting clients, allowing for
// application-specific changes. Explicit requests for the root index document,
// such as "/index.html", get rewritten too. Without an IndexRewriter the index
// document is served as-is.
func WithIndexRewriter(rewriter IndexRewriter) HandlerOption {
	return func(h *Handler) {
		h.indexRewriter = rewriter
	}
}

// WithLogger sets the logger for reporting server errors (at error level) and
// fallbacks (at debug level). By default, nothing gets logged.
func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithResolverOptions passes the specified options on to the Resolver used by
// the Handler.
func WithResolverOptions(opts ...ResolverOption) HandlerOption {
	return func(h *Handler) {
		h.resolverOpts = append(h.resolverOpts, opts...)
	}
}

// BaseRewriter returns an IndexRewriter that sets the href of the index
// document's <base> element to the specified base path. The base path always
// ends in "/", as otherwise browsers would clip off its final element.
func BaseRewriter(base string) IndexRewriter {
	// As this ain't VMS (shudder), we don't need "$" in SPA paths anyway, but
	// it would interfere with our "$1" and "$2" back references.
	base = strings.ReplaceAll(path.Clean("/"+base), "$", "")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return func(_ *http.Request, index string) string {
		return baseRe.ReplaceAllString(index, "${1}"+base+"${2}")
	}
}

// NewHandler returns a new HTTP handler serving static assets from the
// specified fs, falling back to the index document. To serve a directory on
// the OS file system:
//
//	h := NewHandler(os.DirFS("/opt/data/myspa"))
func NewHandler(fsys fs.FS, opts ...HandlerOption) *Handler {
	h := &Handler{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.resolver = NewResolver(fsys, h.resolverOpts...)
	h.resolverOpts = nil // only needed while constructing.
	return h
}

// ServeHTTP resolves the request's URL path and writes the resulting status,
// Content-Type header, and body.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h.resolver.Resolve(r.URL.Path)
	body := resp.Body
	switch {
	case resp.Err != nil:
		h.log.ErrorContext(r.Context(), "cannot serve static asset",
			slog.String("path", r.URL.Path),
			slog.Any("error", resp.Err))
	case resp.Fallback:
		h.log.DebugContext(r.Context(), "serving fallback document",
			slog.String("path", r.URL.Path),
			slog.String("index", resp.Name))
	}
	if h.indexRewriter != nil && resp.Status == http.StatusOK && resp.Name == h.resolver.Index() {
		body = []byte(h.indexRewriter(r, string(body)))
	}
	hdr := w.Header()
	hdr.Set("Content-Type", resp.ContentType)
	hdr.Set("Content-Length", strconv.Itoa(len(body)))
	if resp.Status != http.StatusOK {
		hdr.Set("X-Content-Type-Options", "nosniff")
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(body)
}
