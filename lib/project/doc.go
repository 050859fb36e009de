// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package project maps project identities to filesystem locations.
//
// Every project owns one persistent store file under the application
// data root:
//
//	~/.reqcockpit/projects/<id>.sqlite
//
// The store is opaque to the bridge; this package only names its
// location. [StorePath] produces the filesystem path, [StoreURL] the
// connection string handed to the data backend. Both are pure: equal
// inputs always produce identical results, and nothing here touches
// the filesystem except [DataRoot], which resolves (but never creates)
// the per-install data root.
//
// Resolution failures are reported as [*AddressingError]. An
// addressing failure is fatal to the command that hit it: there is no
// fallback location and no retry.
package project
