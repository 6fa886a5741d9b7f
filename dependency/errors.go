// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package dependency

import "errors"

var (
	// ErrResourceNotAnInput reports a Signal command naming a resource
	// that does not appear among the operation's input references.
	// Prepare does not return it: it logs the error at Warn level and
	// skips that command.
	ErrResourceNotAnInput = errors.New("dependency: signal resource is not one of the operation's input references")

	// ErrSemaphoreCreateFailed is not returned by this package: when
	// vkCreateSemaphore fails, semaphorePool.acquire returns a null
	// semaphore handle rather than an error.
	ErrSemaphoreCreateFailed = errors.New("dependency: vkCreateSemaphore failed")

	// ErrAlreadyFinalized is returned by Finish/Abort called twice on the
	// same injection.
	ErrAlreadyFinalized = errors.New("dependency: injection already finished or aborted")
)
