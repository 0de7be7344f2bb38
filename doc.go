/*
Package spafallback serves static assets of "Single Page Applications" (SPAs)
from a build output directory, supporting client-side DOM routing: whenever a
request path doesn't match any static asset, the index document gets served
instead, so that the SPA's router can take over.

The Resolver type implements the resolution of request paths into Response
values, independent of any HTTP machinery. The Handler type adapts a Resolver
to http.Handler. Both fetch static assets from any resource provider
implementing the fs.FS interface, such as os.DirFS or an embed.FS.

Content types are taken from a fixed table of file extensions instead of the
host's MIME databases; see ContentType.

Please note that 500 responses pass the description of the underlying error on
to clients. This is fine for local and development use, but might leak more
details than desired in other deployments.
*/
package spafallback
