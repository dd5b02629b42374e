// Package pipeline runs the analysis of a metadata file as a sequence of
// named steps: load, clean, aggregate and word cloud.
//
// Each step receives the same model.Analysis and fills in its part. The
// pipeline logs every step, records which steps ran, checks for
// cancellation between steps and stops at the first failure.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. Batch, explore and dashboard modes share the steps but not their order
//    (explore stops after loading or cleaning)
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
package pipeline
