// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context for the CLI.
//
// ActionableError carries the operation, resource, and fix suggestions for
// a failure; the Issue catalog holds longer markdown cards, rendered with
// glamour, for the failure classes a site operator hits most often
// (missing configuration, malformed classification maps, absent
// definitions tree).
package issue
