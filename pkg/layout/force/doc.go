// Package force implements the node-level 3-D force simulation: pairwise
// repulsion, weight-scaled spring attraction along edges, and a mild
// centering pull, integrated over a bounded tick budget with tick-wise
// decreasing velocity retention.
//
// The goal is a readable layout that stabilizes within a fixed wall-clock
// budget, not convergence in any mathematical sense. The simulation owns a
// fixed-size arena of mutable position records for one run; everything else
// resolves positions by node ID and never holds references across dataset
// replacement.
package force
