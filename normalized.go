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
)

// ErrorKind tells whether a failure to read a static asset should trigger the
// SPA fallback or not.
type ErrorKind int

const (
	KindNone     ErrorKind = iota // no error at all.
	KindNotFound                  // missing file or directory; triggers the fallback.
	KindOther                     // anything else; never falls back.
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not found"
	default:
		return "other"
	}
}

// KindOf classifies the specified error. A path walking "through" a regular
// file as if it were a directory is considered to be missing, same as a
// plain non-existing path.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return KindNotFound
	default:
		return KindOther
	}
}

const (
	notFoundMessage = "404 page not found"
	plainText       = "text/plain; charset=utf-8"
)

// notFoundResponse returns the response for when neither the requested asset
// nor the fallback document exist.
func notFoundResponse() Response {
	return Response{
		Status:      http.StatusNotFound,
		Body:        []byte(notFoundMessage),
		ContentType: plainText,
	}
}

// errorResponse returns the response for any failure other than a missing
// asset. The error description gets passed on to the client.
func errorResponse(err error) Response {
	return Response{
		Status:      http.StatusInternalServerError,
		Body:        []byte(fmt.Sprintf("500 internal server error: %s", err.Error())),
		ContentType: plainText,
		Err:         err,
	}
}
