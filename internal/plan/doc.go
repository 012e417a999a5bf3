// Package plan turns task requests into ordered filesystem steps.
//
// A Plan has one of two effects. Filesystem plans carry CREATE_DIR and
// MOVE_FILE steps for the executor. Plans with no filesystem effect belong to
// vault tasks that run in process; they carry the fixed set of paths the task
// may touch so the policy check still sees them. Task types that are known but
// have no planning rule return ErrNoPlannerRegistered instead of a plan.
//
// Download sorting and project layouts are table-driven (see Tables); the
// user configuration can extend both.
package plan
