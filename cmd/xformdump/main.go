// Command xformdump builds a vertex program from a TOML file, activates it against an in-memory
// recorder and prints the resulting shader constant slots.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-transform/config"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer"
	"github.com/Carmen-Shannon/oxy-transform/engine/vertex_program"
	"github.com/Carmen-Shannon/oxy-transform/engine/viewport"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	check      bool
	hex        bool
	verbose    bool
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "xformdump",
		Short: "Print the shader constants produced by a camera and viewport configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML configuration file (defaults are used when empty)")
	cmd.Flags().BoolVar(&f.check, "check", false, "only validate the configuration")
	cmd.Flags().BoolVar(&f.hex, "hex", false, "also print the marshaled constant block as hex")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(stdout, stderr io.Writer, f *flags) error {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return err
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}
	if f.check {
		fmt.Fprintln(stdout, "ok")
		return nil
	}

	options, err := cfg.Options()
	if err != nil {
		return err
	}
	vp, err := vertex_program.NewVertexProgram(append(options, vertex_program.WithLogger(logger))...)
	if err != nil {
		return err
	}
	vp.SetDirectionalLightDirection(cfg.LightDirection())

	rec := renderer.NewRecorder()
	if err := vp.LoadShader(rec); err != nil {
		return err
	}
	vp.Activate()
	if err := vp.LoadConstants(rec); err != nil {
		return err
	}

	if err := dump(stdout, vp, rec, f.hex); err != nil {
		return err
	}

	// Look-at style cameras report whether their target survives clipping. The identity projection
	// has no clip volume worth reporting.
	if _, identity := vp.Projector().Projection().(viewport.IdentityProjection); identity {
		return nil
	}
	if pose, err := cfg.Pose(); err == nil {
		if lookAt, ok := pose.(camera.PoseLookAt); ok {
			fmt.Fprintf(stdout, "\ntarget %v in view: %t\n", lookAt.Target, vp.ViewFrustum().ContainsPoint(lookAt.Target))
		}
	}
	return nil
}

func dump(w io.Writer, vp vertex_program.VertexProgram, rec *renderer.Recorder, hex bool) error {
	layout := vp.Layout()
	fmt.Fprintf(w, "program: %s (%s, %d bytes)\n", vp.Program().Key(), vp.Program().EntryPoint(), len(vp.Program().Bytes()))
	fmt.Fprintf(w, "slots:   %d\n\n", rec.SlotCount())

	names := make(map[int]string, len(layout.Descriptors()))
	for _, d := range layout.Descriptors() {
		names[d.Index] = d.Name
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tNAME\tVALUE")
	for _, c := range rec.Calls {
		if c.Kind == renderer.CallMatrix {
			for r := 0; r < 4; r++ {
				row := c.Matrix.Row(r)
				name := ""
				if r == 0 {
					name = names[c.Slot]
				}
				fmt.Fprintf(tw, "%d\t%s\t% .6g\n", c.Slot+r, name, row)
			}
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t% .6g\n", c.Slot, names[c.Slot], c.Vector)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if hex {
		block, err := vp.Pack()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%x\n", block.Marshal())
	}
	return nil
}
