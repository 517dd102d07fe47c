// Command blockforge voxelizes a recipe into blocks and prints a block
// histogram.
//
//	blockforge -recipe examples/crate.forge -resolution 48 -fill
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/chazu/blockforge/pkg/palette"
	"github.com/chazu/blockforge/pkg/voxel"
	"github.com/chazu/blockforge/pkg/voxelize"
)

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("blockforge: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("blockforge", flag.ContinueOnError)
	recipePath := fs.String("recipe", "", "recipe file to voxelize (required)")
	palettePath := fs.String("palette", "", "JSON block palette; replaces the recipe's blocks")
	resolution := fs.Int("resolution", voxelize.DefaultResolution, "voxels along the longest axis")
	fill := fs.Bool("fill", false, "fill solid interiors")
	center := fs.Bool("center", true, "center the model on the origin")
	cells := fs.Int("cells", 64, "marching cubes cells along the longest axis of each solid")
	quiet := fs.Bool("q", false, "suppress progress logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *recipePath == "" {
		fs.Usage()
		return errors.New("missing -recipe")
	}

	source, err := os.ReadFile(*recipePath)
	if err != nil {
		return err
	}

	logger := log.Default()
	if *quiet {
		logger = log.New(io.Discard, "", 0)
	}
	app := NewApp(*cells, logger)
	if *palettePath != "" {
		if app.Palette, err = palette.LoadFile(*palettePath); err != nil {
			return err
		}
	}

	// Flags given explicitly override the recipe.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	app.Adjust = func(cfg *voxelize.Config) {
		if set["resolution"] {
			cfg.Resolution = *resolution
		}
		if set["fill"] {
			cfg.SolidFill = *fill
		}
		if set["center"] {
			cfg.Center = *center
		}
	}

	res, err := app.Build(ctx, string(source), filepath.Dir(*recipePath))
	if res != nil && len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintf(out, "%s: %s\n", *recipePath, e.Error())
		}
		return fmt.Errorf("%s: recipe has %d error(s)", *recipePath, len(res.Errors))
	}
	if res != nil && res.Voxels != nil {
		printSummary(out, res)
	}
	return err
}

// printSummary writes the block histogram and per-pass counts.
func printSummary(out io.Writer, res *Result) {
	fmt.Fprintf(out, "%s: %d voxels, step %.4g, resolution %d, fill %v\n",
		res.Model.Name, len(res.Voxels), res.Step, res.Config.Resolution, res.Config.SolidFill)

	for _, bc := range voxel.Histogram(res.Voxels) {
		fmt.Fprintf(out, "  %-40s %8d\n", bc.BlockID, bc.Count)
	}

	phases := voxel.PhaseCounts(res.Voxels)
	keys := make([]voxel.Phase, 0, len(phases))
	for p := range phases {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, p := range keys {
		fmt.Fprintf(out, "  pass %-9s %8d\n", p, phases[p])
	}
}
