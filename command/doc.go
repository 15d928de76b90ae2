// Package command contains the write-side workflow handlers: personnel
// onboarding and signup reconciliation, QR token rotation, dependency-guarded
// deletions, and the curriculum write operations. Handlers follow the
// go-command Commander contract; results are delivered through a Result
// pointer on the input.
package command
