// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package structkey extracts a [key.HashKey] from a tagged Vulkan
// create-info struct: a byte string that uniquely identifies the logical
// object the struct describes, up to hashing-irrelevant noise (extension
// chains, informational hint flags, debug names, derivative-pipeline
// hints). Opaque handle fields are replaced with caller-supplied
// replacement values, so two create-infos that reference different handle
// generations of logically-equivalent objects still extract to the same
// key.
//
// Extract is a switch on the create-info's Go type, one case per cacheable
// vk.StructureType tag; each typed extractor pushes that tag first, then
// pushes fields in declaration order, skipping the fields listed
// for that tag in ignored_fields.go.
package structkey
