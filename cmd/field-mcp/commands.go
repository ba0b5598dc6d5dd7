package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/field-tools-mcp/internal/config"
	"github.com/ironsheep/field-tools-mcp/internal/contour"
	"github.com/ironsheep/field-tools-mcp/internal/critical"
	"github.com/ironsheep/field-tools-mcp/internal/field"
	"github.com/ironsheep/field-tools-mcp/internal/report"
	"github.com/ironsheep/field-tools-mcp/internal/server"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "field-mcp",
		Short: "MCP server and CLI for scalar field contours and critical points",
		Long: `field-mcp analyzes 2D scalar fields sampled on a rectilinear grid.

Without a subcommand it serves MCP (JSON-RPC 2.0) on stdin/stdout.
Fields are read from CSV files (x,y,S rows after a header) or from
heightmap images. Every setting can also come from a FIELD_MCP_*
environment variable or a config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (toml, yaml or json)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text or json)")
	pf.String("channel", string(field.ChannelLuma), "heightmap channel (luma or lightness)")
	pf.Int("max-size", 0, "downsample heightmaps so neither side exceeds this (0 = off)")
	pf.Float64("smooth", 0, "Gaussian blur radius applied to heightmaps (0 = off)")
	pf.Float64("scale", 1, "multiplier applied to heightmap values")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	root.AddCommand(
		a.newServeCmd(),
		a.newContoursCmd(),
		a.newCriticalCmd(),
		a.newInfoCmd(),
		newVersionCmd(),
	)
	return root
}

// setup resolves configuration and the logger.
func (a *app) setup(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cfg.NewLogger(cmd.ErrOrStderr())
	return nil
}

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(server.Options{
		Heightmap: a.cfg.Heightmap,
		Logger:    a.log,
		Registry:  reg,
		Version:   Version,
	})

	if addr := a.cfg.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.WithError(err).Error("metrics listener stopped")
			}
		}()
		a.log.WithField("addr", addr).Info("serving metrics")
	}

	a.log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("field-tools-mcp starting")

	return srv.Run()
}

// analysisFlags are shared by the contours and critical commands.
type analysisFlags struct {
	format string
	region string
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "text", "output format (text, json or geojson)")
	cmd.Flags().StringVar(&f.region, "region", "", "analyze only rows [row1,row2) and columns [col1,col2), given as row1,col1,row2,col2")
}

// load reads path and applies the region flag.
func (a *app) load(path string, f *analysisFlags) (*field.Grid, error) {
	g, err := field.NewCache(a.cfg.Heightmap).Load(path)
	if err != nil {
		return nil, err
	}
	if f.region == "" {
		return g, nil
	}
	rg, err := parseRegion(f.region)
	if err != nil {
		return nil, err
	}
	return g.Window(rg)
}

func (a *app) newContoursCmd() *cobra.Command {
	var (
		flags     analysisFlags
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "contours FILE",
		Short: "Print iso-contour segments at a threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			g, err := a.load(args[0], &flags)
			if err != nil {
				return err
			}
			res := contour.Analyze(g, threshold)
			a.log.WithFields(logrus.Fields{
				"path":      args[0],
				"threshold": threshold,
				"segments":  res.Count,
			}).Debug("contours extracted")

			out, err := report.Contours(format, res)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "iso-value to contour")
	_ = cmd.MarkFlagRequired("threshold")
	flags.register(cmd)
	return cmd
}

func (a *app) newCriticalCmd() *cobra.Command {
	var (
		flags analysisFlags
		kind  string
	)
	cmd := &cobra.Command{
		Use:   "critical FILE",
		Short: "Print local minima, local maxima and saddle points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var k critical.Kind
			if kind != "all" {
				parsed, err := critical.ParseKind(kind)
				if err != nil {
					return err
				}
				k = parsed
			}
			format, err := report.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			g, err := a.load(args[0], &flags)
			if err != nil {
				return err
			}
			res := critical.Analyze(g, k)
			a.log.WithField("path", args[0]).WithField("counts", res.Counts).Debug("critical points classified")

			out, err := report.CriticalPoints(format, k, res)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "all, minimum, maximum or saddle")
	flags.register(cmd)
	return cmd
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print grid size, extents and value statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := field.LoadInfo(field.NewCache(a.cfg.Heightmap), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Format:  %s (%d bytes)\n", info.Format, info.FileSizeBytes)
			fmt.Fprintf(w, "Grid:    %d x %d\n", info.Width, info.Height)
			fmt.Fprintf(w, "X range: %g .. %g\n", info.XMin, info.XMax)
			fmt.Fprintf(w, "Y range: %g .. %g\n", info.YMin, info.YMax)
			fmt.Fprintf(w, "Values:  min %g, max %g, mean %g\n", info.SMin, info.SMax, info.SMean)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "field-tools-mcp %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
		},
	}
}

func writeOutput(cmd *cobra.Command, out []byte) error {
	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

// parseRegion parses "row1,col1,row2,col2".
func parseRegion(s string) (field.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return field.Region{}, fmt.Errorf("%w: want row1,col1,row2,col2, got %q", field.ErrBadRegion, s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return field.Region{}, fmt.Errorf("%w: %q is not an integer", field.ErrBadRegion, p)
		}
		n[i] = v
	}
	return field.Region{Row1: n[0], Col1: n[1], Row2: n[2], Col2: n[3]}, nil
}
