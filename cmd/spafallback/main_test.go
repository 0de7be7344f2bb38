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

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/thediveo/spafallback/internal/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("spafallback command", func() {

	var cfg config.Config
	var logbuff *bytes.Buffer
	var log *slog.Logger

	BeforeEach(func() {
		root := Successful(os.MkdirTemp("", "spafallback-cmd-*"))
		DeferCleanup(func() { _ = os.RemoveAll(root) })
		Expect(os.WriteFile(filepath.Join(root, "index.html"),
			[]byte(`<html><head><base href="/"/></head><body>A</body></html>`), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "app.js"), []byte("B"), 0o644)).To(Succeed())

		cfg = Successful(config.Parse(map[string]string{
			"SPA_ADDR":             "127.0.0.1:0",
			"SPA_ROOT":             root,
			"SPA_SHUTDOWN_TIMEOUT": "2s",
		}))
		logbuff = &bytes.Buffer{}
		log = slog.New(slog.NewTextHandler(logbuff, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	get := func(url string) (int, string, string) {
		GinkgoHelper()
		resp := Successful(http.Get(url))
		defer resp.Body.Close()
		body := Successful(io.ReadAll(resp.Body))
		return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
	}

	It("serves until cancelled", func() {
		l := Successful(net.Listen("tcp", cfg.Addr))
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- serve(ctx, l, cfg, log) }()

		url := "http://" + l.Addr().String()
		status, ctype, body := get(url + "/app.js")
		Expect(status).To(Equal(http.StatusOK))
		Expect(ctype).To(Equal("application/javascript"))
		Expect(body).To(Equal("B"))

		status, ctype, body = get(url + "/some/route?x=1")
		Expect(status).To(Equal(http.StatusOK))
		Expect(ctype).To(Equal("text/html"))
		Expect(body).To(ContainSubstring("<body>A</body>"))

		cancel()
		Eventually(done).Within(5 * time.Second).Should(Receive(BeNil()))
		Expect(logbuff.String()).To(And(
			ContainSubstring("serving "+cfg.Root+" on http://localhost:"),
			ContainSubstring("shutting down server gracefully")))
	})

	It("rewrites the base when configured", func() {
		cfg.Base = "/myapp"
		h := newHandler(cfg, log)
		srv := &http.Server{Handler: h}
		l := Successful(net.Listen("tcp", "127.0.0.1:0"))
		go func() { _ = srv.Serve(l) }()
		DeferCleanup(func() { _ = srv.Close() })

		_, _, body := get("http://" + l.Addr().String() + "/deep/link")
		Expect(body).To(ContainSubstring(`<base href="/myapp/"/>`))
	})

	It("warns about an inaccessible root", func() {
		cfg.Root = filepath.Join(cfg.Root, "nowhere")
		_ = newHandler(cfg, log)
		Expect(logbuff.String()).To(ContainSubstring("root directory not accessible"))

		logbuff.Reset()
		cfg.Root = filepath.Join(filepath.Dir(cfg.Root), "app.js")
		_ = newHandler(cfg, log)
		Expect(logbuff.String()).To(ContainSubstring("root is not a directory"))
	})

	It("extracts ports", func() {
		Expect(portOf(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8000})).To(Equal(":8000"))
		Expect(portOf(&net.UnixAddr{Name: "/tmp/sock", Net: "unix"})).To(BeEmpty())
	})

})
