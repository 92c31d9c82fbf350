package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// infoCommand creates the info command for inspecting snapshot files.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Print statistics for a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := kgraph.ReadSnapshotFile(args[0])
			if err != nil {
				return err
			}
			snap = snap.Normalize()
			printSnapshotInfo(&snap)
			return nil
		},
	}
}

// printSnapshotInfo prints a summary of a snapshot's contents.
func printSnapshotInfo(snap *kgraph.Snapshot) {
	printKeyValue("Nodes", fmt.Sprintf("%d", len(snap.Nodes)))
	printKeyValue("Edges", fmt.Sprintf("%d", len(snap.Edges)))
	printKeyValue("Clusters", fmt.Sprintf("%d", len(snap.Clusters)))
	printKeyValue("Gaps", fmt.Sprintf("%d", len(snap.Gaps)))

	bridges := 0
	unclustered := 0
	for i := range snap.Nodes {
		if snap.Nodes[i].Bridge {
			bridges++
		}
		if !snap.Nodes[i].InCluster() {
			unclustered++
		}
	}
	printKeyValue("Bridges", fmt.Sprintf("%d", bridges))
	printKeyValue("Unclustered", fmt.Sprintf("%d", unclustered))

	if len(snap.Centrality) > 0 {
		printNewline()
		printInfo("Most central nodes")
		for _, e := range topCentral(snap, 5) {
			printDetail("%-30s %.4f", e.name, e.score)
		}
	}

	printNewline()
	printNextStep("Render it", "atlas render <file> -t topics -f svg")
}

type centralNode struct {
	name  string
	score float64
}

// topCentral returns the n most central nodes by score, names resolved.
func topCentral(snap *kgraph.Snapshot, n int) []centralNode {
	out := make([]centralNode, 0, len(snap.Centrality))
	for _, e := range snap.Centrality {
		name := e.NodeID
		if node, ok := snap.Node(e.NodeID); ok {
			name = node.DisplayName()
		}
		out = append(out, centralNode{name: name, score: e.Betweenness})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score == out[j].score {
			return out[i].name < out[j].name
		}
		return out[i].score > out[j].score
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
