package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/conceptatlas/atlas/pkg/camera"
	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
)

// exploreCommand creates the explore command for interactive terminal
// exploration of a snapshot.
func (c *CLI) exploreCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a snapshot interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return runExplore(ctx, args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML tunables file")
	return cmd
}

// runExplore settles both layouts and starts the terminal explorer.
func runExplore(ctx context.Context, input, configPath string) error {
	logger := loggerFromContext(ctx)

	snap, err := kgraph.ReadSnapshotFile(input)
	if err != nil {
		return err
	}
	snap = snap.Normalize()
	logger.Infof("Loaded snapshot: %d nodes, %d edges, %d clusters",
		len(snap.Nodes), len(snap.Edges), len(snap.Clusters))

	tunables, err := loadTunables(configPath)
	if err != nil {
		return err
	}

	spin := newSpinnerWithContext(ctx, "Settling layouts")
	spin.Start()

	nodes3 := force.New(snap.Nodes, snap.Edges, snap.CentralityMap(), tunables.forceConfig())
	nodes3.Run()
	topics := topic.New(&snap, tunables.topicConfig())
	topics.Run()

	spin.Stop()
	printSuccess("Layouts settled")

	model := newExploreModel(&snap, nodes3, topics)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// Position Resolver
// =============================================================================

// layoutResolver answers camera focus queries from the settled simulations.
type layoutResolver struct {
	snap   *kgraph.Snapshot
	nodes3 *force.Sim
	topics *topic.Sim
	view   string
}

// NodePosition resolves a node position from the active view's layout.
func (r *layoutResolver) NodePosition(id string) (camera.Vec3, bool) {
	if r.view == kgraph.ViewTopics {
		p, ok := r.topics.MemberPosition(id)
		return camera.Vec3{X: p.X, Y: p.Y}, ok
	}
	x, y, z, ok := r.nodes3.Position(id)
	return camera.Vec3{X: x, Y: y, Z: z}, ok
}

// ClusterPositions resolves the member positions of a cluster.
func (r *layoutResolver) ClusterPositions(clusterID int) []camera.Vec3 {
	cl, ok := r.snap.Cluster(clusterID)
	if !ok {
		return nil
	}
	out := make([]camera.Vec3, 0, len(cl.Members))
	for _, id := range cl.Members {
		if p, ok := r.NodePosition(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// GapPositions resolves positions for the union of both gap-side clusters'
// members plus bridge candidates.
func (r *layoutResolver) GapPositions(gapID string) []camera.Vec3 {
	gap, ok := r.snap.Gap(gapID)
	if !ok {
		return nil
	}
	ids := gap.MemberIDs()
	out := make([]camera.Vec3, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.NodePosition(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Ensure layoutResolver implements camera.Resolver.
var _ camera.Resolver = (*layoutResolver)(nil)

// gapLabel renders a short description of a gap for the status line.
func gapLabel(snap *kgraph.Snapshot, gap *kgraph.StructuralGap) string {
	a, okA := snap.Cluster(gap.ClusterA)
	b, okB := snap.Cluster(gap.ClusterB)
	if !okA || !okB {
		return gap.ID
	}
	return fmt.Sprintf("%s <-> %s", a.DisplayLabel(), b.DisplayLabel())
}
