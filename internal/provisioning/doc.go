// Package provisioning orchestrates the cluster lifecycle phases run by the CLI.
//
// The apply command runs the build phases (validate stack, resolve flavor,
// submit the create request, wait for the cluster to become active); the
// destroy command runs the teardown phases (submit the delete request, wait
// for the cluster to be gone). Phases share a Context and report through an
// Observer so the CLI can render either plain log lines or a live TUI.
//
// # Core Types
//
// Context carries configuration, state, the control-plane client, the
// lifecycle controller, and the persistence store.
// Phase defines a lifecycle step with Name() and Provision() methods.
// State accumulates results from each phase (validated stack, resolved
// flavor, persisted record, latest cluster snapshot).
package provisioning
