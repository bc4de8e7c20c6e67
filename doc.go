/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package hbbft implements the epoch-driving core of the Honey Badger
// asynchronous Byzantine fault tolerant atomic broadcast protocol: a
// state machine that samples transactions out of a local buffer, drives
// one Asynchronous Common Subset (ACS) instance per epoch, routes wire
// messages to the correct epoch's instance, assembles ACS outputs into
// ordered batches, and advances.
//
// Engine is pull-based and single-threaded: every exported method runs
// to completion without blocking, and the caller must not invoke methods
// on the same Engine concurrently from more than one goroutine. All I/O
// — delivering outbound messages, reading delivered batches — happens by
// polling NextMessage and NextOutput; Engine never performs network or
// disk I/O itself.
//
// ACS is an external collaborator (package acs) supplied by the caller
// through Config.NewACS; this package does not implement Reliable
// Broadcast or Binary Byzantine Agreement. pkg/acs/simpleacs ships a
// reference, non-Byzantine-safe ACS suitable for tests and local
// simulation only.
package hbbft
