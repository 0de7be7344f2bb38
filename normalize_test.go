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
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"syscall"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("normalize errors", func() {

	DescribeTable("classifies errors",
		func(err error, expected ErrorKind) {
			Expect(KindOf(err)).To(Equal(expected))
		},
		Entry("no error", nil, KindNone),
		Entry("something's missing", fmt.Errorf("foobar mistake %w", fs.ErrNotExist),
			KindNotFound),
		Entry("walking through a file", &fs.PathError{Op: "stat", Path: "a/b", Err: syscall.ENOTDIR},
			KindNotFound),
		Entry("something's out of reach", fmt.Errorf("finger wech! %w", fs.ErrPermission),
			KindOther),
		Entry("else it's something else", errors.New("foobar"),
			KindOther),
	)

	It("describes error kinds", func() {
		Expect(KindNone.String()).To(Equal("none"))
		Expect(KindNotFound.String()).To(Equal("not found"))
		Expect(KindOther.String()).To(Equal("other"))
	})

	It("returns a plain 404", func() {
		resp := notFoundResponse()
		Expect(resp.Status).To(Equal(http.StatusNotFound))
		Expect(string(resp.Body)).To(Equal("404 page not found"))
		Expect(resp.ContentType).To(HavePrefix("text/plain"))
		Expect(resp.Err).To(BeNil())
	})

	It("passes on the error description in a 500", func() {
		err := errors.New("device on fire")
		resp := errorResponse(err)
		Expect(resp.Status).To(Equal(http.StatusInternalServerError))
		Expect(string(resp.Body)).To(ContainSubstring("device on fire"))
		Expect(resp.ContentType).To(HavePrefix("text/plain"))
		Expect(resp.Err).To(BeIdenticalTo(err))
	})

})
