// Package policy is the safety gate between planning and execution.
//
// The engine sees the request and the paths its plan would touch. Paths are
// resolved the way the operating system would see them: "~" is expanded,
// relative paths are made absolute and symbolic links are followed, through
// the deepest existing ancestor for paths that do not exist yet. A symlink
// inside home that points outside it is therefore rejected.
//
// Approval is a nil error. Rejections are *PathOutsideHomeError or
// *TooManyPathsError, which match kerrors.ErrPathOutsideHome and
// kerrors.ErrTooManyAffectedPaths with errors.Is.
package policy
