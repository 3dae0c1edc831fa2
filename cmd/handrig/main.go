// handrig is a CLI utility for hand rig prefabs and tracking recordings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/handviz/internal/assets"
	"github.com/Faultbox/handviz/internal/handviz"
	"github.com/Faultbox/handviz/internal/logger"
	"github.com/Faultbox/handviz/internal/scene"
	"github.com/Faultbox/handviz/internal/tracking"
	"github.com/Faultbox/handviz/pkg/hand"
)

// errUsage marks a command line problem; the usage text has already been
// printed.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	log, err := logger.New("info", logger.FileConfig{}, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(os.Args[1], os.Args[2:], os.Stdout, log); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer, log *zap.Logger) error {
	switch command {
	case "names":
		return cmdNames(args, out)
	case "prefab":
		return cmdPrefab(args, out)
	case "validate":
		return cmdValidate(args, out, log)
	case "record":
		return cmdRecord(args, out)
	case "info":
		return cmdInfo(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `handrig - hand rig and tracking recording utility

Usage:
  handrig <command> [options]

Commands:
  names [-side left|right]                      Print the joint name table
  prefab export [-kind hand|debug|velocity] [-side left|right] [-o file]
                                                Write a built-in prefab as YAML
  validate [-side left|right] <prefab.yaml>     Bind a hand prefab and report problems
  record [-o file] [-seconds n] [-rate hz]      Record the synthetic tracking source
  info <recording.yaml>                         Show recording information

Examples:
  handrig names -side right
  handrig prefab export -side left -o left_hand.yaml
  handrig validate -side left left_hand.yaml
  handrig record -seconds 10 -rate 60 -o session.yaml
  handrig info session.yaml`)
}

func parseSide(s string) (hand.Handedness, error) {
	for _, h := range hand.Hands() {
		if strings.EqualFold(s, h.String()) {
			return h, nil
		}
	}
	return hand.Left, fmt.Errorf("unknown side %q (want left or right)", s)
}

func cmdNames(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("names", flag.ContinueOnError)
	side := fs.String("side", "", "Prefix names for this hand")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	prefix := ""
	if *side != "" {
		h, err := parseSide(*side)
		if err != nil {
			return err
		}
		prefix = h.Prefix()
	}

	names := hand.DefaultJointNames()
	for i, name := range names {
		fmt.Fprintf(out, "%2d  %-22s %s%s\n", i, hand.FromIndex(i), prefix, name)
	}
	return nil
}

func cmdPrefab(args []string, out io.Writer) error {
	if len(args) < 1 || args[0] != "export" {
		fmt.Fprintln(os.Stderr, "Usage: handrig prefab export [-kind hand|debug|velocity] [-side left|right] [-o file]")
		return errUsage
	}
	fs := flag.NewFlagSet("prefab export", flag.ContinueOnError)
	kind := fs.String("kind", "hand", "Prefab to export: hand, debug or velocity")
	side := fs.String("side", "left", "Hand side for -kind hand")
	output := fs.String("o", "", "Output file (default stdout)")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	var p *scene.Prefab
	switch *kind {
	case "hand":
		h, err := parseSide(*side)
		if err != nil {
			return err
		}
		p = assets.HandPrefab(h)
	case "debug":
		p = assets.DebugMarkerPrefab()
	case "velocity":
		p = assets.VelocityPrefab()
	default:
		return fmt.Errorf("unknown prefab kind %q", *kind)
	}

	data, err := p.Marshal()
	if err != nil {
		return err
	}
	return writeOutput(*output, data, out)
}

func cmdValidate(args []string, out io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	side := fs.String("side", "left", "Hand side the prefab is authored for")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: handrig validate [-side left|right] <prefab.yaml>")
		return errUsage
	}
	h, err := parseSide(*side)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	p, err := scene.ParsePrefab(data)
	if err != nil {
		return err
	}

	g := scene.NewGraph()
	rig, err := handviz.BindRig(g, handviz.BindOptions{
		Handedness: h,
		Parent:     g.Create("Hands", scene.NoNode),
		Assets: handviz.RigAssets{
			Mesh:        p,
			DebugMarker: assets.DebugMarkerPrefab(),
			Velocity:    assets.VelocityPrefab(),
		},
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	fmt.Fprintf(out, "Prefab:  %s (%d nodes)\n", p.Name, p.Count())
	fmt.Fprintf(out, "Side:    %s\n", h)
	fmt.Fprintf(out, "Bound:   %d/%d joints\n", rig.Bound(), hand.JointCount)
	if _, ok := rig.JointNode(hand.Palm); !ok {
		fmt.Fprintln(out, "Palm:    not found")
	}
	if missing := rig.MissingFingers(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.String()
		}
		fmt.Fprintf(out, "Missing: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func cmdRecord(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default stdout)")
	name := fs.String("name", "synthetic", "Recording name")
	seconds := fs.Float64("seconds", 5, "Length in seconds")
	rate := fs.Float64("rate", 30, "Frames per second")
	dropoutEvery := fs.Float64("dropout-every", 0, "Drop the right hand every n seconds (0 disables)")
	dropoutFor := fs.Float64("dropout-for", 0, "Length of each right-hand dropout in seconds")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *seconds <= 0 || *rate <= 0 {
		return fmt.Errorf("seconds and rate must be positive")
	}

	cfg := tracking.DefaultSyntheticConfig()
	cfg.DropoutEvery = *dropoutEvery
	cfg.DropoutFor = *dropoutFor
	rec := tracking.Record(tracking.NewSynthetic(cfg), *name, *seconds, *rate)

	data, err := rec.Marshal()
	if err != nil {
		return err
	}
	return writeOutput(*output, data, out)
}

func cmdInfo(args []string, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: handrig info <recording.yaml>")
		return errUsage
	}

	rec, err := tracking.LoadRecording(args[0])
	if err != nil {
		return err
	}

	var left, right int
	for _, f := range rec.Frames {
		if f.Left != nil {
			left++
		}
		if f.Right != nil {
			right++
		}
	}

	fmt.Fprintf(out, "Recording: %s\n", args[0])
	fmt.Fprintf(out, "Name:      %s\n", rec.Name)
	fmt.Fprintf(out, "Rate:      %g Hz\n", rec.Rate)
	fmt.Fprintf(out, "Frames:    %d\n", len(rec.Frames))
	fmt.Fprintf(out, "Duration:  %.2fs\n", rec.Duration())
	fmt.Fprintf(out, "Tracked:   left %d, right %d\n", left, right)
	return nil
}

func writeOutput(path string, data []byte, out io.Writer) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
