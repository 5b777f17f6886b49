// Package defaults centralizes timeout and limit constants used across
// winspect components. Keeping them in one place makes the operational
// envelope of the tool reviewable at a glance.
package defaults
