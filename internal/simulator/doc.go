// Package simulator is an in-process stand-in for the Cloud Big Data
// control plane. It speaks the same HTTP API as the real service: token
// auth, flavor and stack catalogs, SSH key registration, and the cluster
// lifecycle (BUILDING, ACTIVE, DELETING, gone), driven by a ticker sweep
// instead of real provisioning.
//
// Chaos endpoints under /sim let tests partition the region (cluster
// routes answer 503) or force a cluster into ERROR.
package simulator
