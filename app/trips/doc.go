// Package trips stores the trip posts users save from the planner and serves
// them under /api/posts. Posts are only ever visible to their owner.
package trips
