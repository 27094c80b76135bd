// Package sim provides the discrete-event simulation kernel for the
// two-lane warehouse intake model.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: the Engine (virtual clock + ordered wakeups) and the Process interface
//   - queue.go: ShipmentQueue, the bounded lane buffer with full/empty dwell accounting
//   - worker.go: the worker state machine and the lane tie-break
//   - simulator.go: Run and Simulate, which wire everything for one parameter tuple
//
// # Model
//
// Two arrival processes (grocery, frozen) generate shipments with exponential
// inter-arrival times and offer them to their lane's bounded queue. A shipment
// arriving at a full queue is rejected and counted. Accepted shipments release
// one permit of the warehouse-wide "shipment available" semaphore. Each worker
// in the shared pool acquires a permit, takes from the grocery queue only if it
// is strictly longer than the frozen queue (frozen otherwise), and holds for an
// exponential service time whose MEAN is the lane's configured processing time.
//
// # Concurrency
//
// Processes are explicit state machines resumed by one Engine on one goroutine.
// A Run must not be shared between goroutines; parallelism across runs lives in
// sim/sweep.
//
// Sub-packages:
//   - sim/sweep/: Cartesian parameter grids and the parallel sweep executor
//   - sim/results/: result tables, CSV/YAML export and the SQLite store
//   - sim/trace/: optional record of lane choices and rejections for one run
package sim
