// Package preference implements per-user notification topic flags.
//
// Flags are only ever cleared here (unsubscribe handling); opting back in
// happens through the owner panel's preference UI outside this service.
package preference
