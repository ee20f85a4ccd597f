// Package remote holds the SSH side of a deployment: one authenticated
// session against a host, able to copy a single file over SCP and to run a
// command while capturing its text output.
//
// A Session is owned by a single caller. It is dialled for one deployment,
// used for an upload and an exec, and closed. Nothing is pooled or retried.
package remote
