// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structkey

import "errors"

// ErrUnknownTag is returned by [Extract] for a structure type this package
// does not support — equivalent to "not cacheable" at the call site.
var ErrUnknownTag = errors.New("structkey: unsupported structure type")

// ErrHandleCountMismatch is returned when the caller's handles slice does
// not carry exactly the number of opaque-handle slots the create-info
// requires, in declaration order.
var ErrHandleCountMismatch = errors.New("structkey: handle count mismatch")
