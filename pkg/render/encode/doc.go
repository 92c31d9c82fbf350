// Package encode implements the deterministic visual encoding rules shared
// by both graph views: cluster colors, node sizing, bloom layers, cluster
// boundary hulls, and label visibility.
//
// Every function here is a pure mapping from inputs to visual attributes.
// Determinism is the point: the same cluster label hashes to the same
// palette color across render passes and cluster-order permutations, and
// size scaling is square-root so doubling a node's radius requires four
// times the weight.
package encode
