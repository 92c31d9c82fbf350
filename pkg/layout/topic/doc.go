// Package topic implements the cluster-level 2-D force simulation behind
// the topic view. Arena nodes are whole clusters; link rest distance and
// strength follow the connection weight normalized against the heaviest
// link in the dataset, repulsion scales with cluster footprints, a radial
// gravity term holds the layout at the canvas center, and an explicit
// boundary clamp runs after every tick.
//
// Structural gaps share physical links with regular connections: when a
// pair has both, a single merged link carries the weight and the gap flag.
package topic
