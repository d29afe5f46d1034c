// Package window implements the in-memory window manager state machine.
//
// Windows live for one run of the host process and are never persisted.
// Lifecycle per window: Closed → Open(active) ⇄ Open(inactive) ⇄
// Minimized ⇄ Open(active), with an orthogonal maximized flag while open.
//
// Ordering rules:
//   - Z-index values are allocated from a monotonically increasing
//     counter and never reused, so recency of activation is the sole
//     ranking signal
//   - At most one window is active at any time
//   - The next active window after a close or minimize is the remaining
//     non-minimized window with the highest z-index
//
// Operations on unknown window ids are no-ops, not errors: callers only
// reference ids they obtained from the manager itself.
package window
