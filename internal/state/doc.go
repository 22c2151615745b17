// Package state persists cluster records between cbdctl invocations.
//
// A Record captures the provider-assigned cluster id together with the
// request that produced it. apply writes the record once the create
// request is accepted; status and destroy read it back, possibly from a
// different machine when the S3 backend is configured.
package state
