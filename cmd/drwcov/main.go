package main

import (
	"fmt"
	"github.com/ritabanc/qso-var/kern"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strconv"
	"strings"
)

type app struct {
	verbose    bool
	configPath string
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "drwcov",
		Short: "Evaluate a damped-random-walk covariance function",
		Long: `drwcov loads a DRW kernel from a YAML file with the keys
loga2 | variance | a, logl | l and dim, and evaluates it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "kernel configuration (YAML)")

	root.AddCommand(
		&cobra.Command{
			Use:   "eval X XP",
			Short: "Covariance between two comma-separated points",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				k, err := a.kernel()
				if err != nil {
					return err
				}
				x, err := parsePoint(args[0])
				if err != nil {
					return err
				}
				xp, err := parsePoint(args[1])
				if err != nil {
					return err
				}
				val, err := k.Evaluate(x, xp)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(val, 'g', -1, 64))
				return nil
			},
		},
		&cobra.Command{
			Use:   "gram P1 [P2 ...]",
			Short: "Covariance matrix of comma-separated points",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				k, err := a.kernel()
				if err != nil {
					return err
				}
				data := make([]float64, 0, len(args)*k.Dim())
				for _, arg := range args {
					p, err := parsePoint(arg)
					if err != nil {
						return err
					}
					if len(p) != k.Dim() {
						return fmt.Errorf("%w: point %q has %d coordinates, kernel has %d",
							kern.ErrDimensionMismatch, arg, len(p), k.Dim())
					}
					data = append(data, p...)
				}
				g, err := kern.Gram(k, mat.NewDense(len(args), k.Dim(), data))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%v\n", mat.Formatted(g))
				return nil
			},
		},
		&cobra.Command{
			Use:   "params",
			Short: "Print hyperparameters and their sampling metadata",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				k, err := a.kernel()
				if err != nil {
					return err
				}
				return writeParams(cmd.OutOrStdout(), k)
			},
		},
	)
	return root
}

func (a *app) kernel() (*kern.DRW, error) {
	var cfg kern.Config
	if a.configPath != "" {
		var err error
		cfg, err = kern.LoadConfig(a.configPath)
		if err != nil {
			return nil, err
		}
	}
	a.logger.Debug("loading kernel", zap.String("config", a.configPath))
	return kern.NewDRW(cfg, kern.WithLogger(a.logger))
}

type paramInfo struct {
	Value  []float64           `yaml:"value"`
	Finite kern.Finiteness     `yaml:"finite"`
	Domain kern.Domain         `yaml:"domain"`
	Method kern.SamplingMethod `yaml:"method"`
}

func writeParams(w io.Writer, k *kern.DRW) error {
	finite := k.IsDomainFinite()
	domain := k.ParamsDomain()
	method := k.CreateMethod()
	out := make(map[string]paramInfo)
	for _, name := range k.ListParams() {
		v, _ := k.Params().Get(name)
		out[name] = paramInfo{
			Value:  mat.Col(nil, 0, v),
			Finite: finite[name],
			Domain: domain[name],
			Method: method[name],
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func parsePoint(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
