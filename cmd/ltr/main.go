package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hanling14/graphchi-ltr/infra/config"
	"github.com/hanling14/graphchi-ltr/internal/algo/ltr"
	"github.com/hanling14/graphchi-ltr/internal/dataset"
	"github.com/hanling14/graphchi-ltr/internal/eval"
	"github.com/hanling14/graphchi-ltr/internal/math/ml"
	"github.com/hanling14/graphchi-ltr/internal/metrics"
	"github.com/hanling14/graphchi-ltr/internal/model"
	"github.com/hanling14/graphchi-ltr/internal/trainer"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// options is the full configuration surface of a run. Every field can come
// from a flag or from the yaml defaults file; flags win.
type options struct {
	TrainData    string `yaml:"train_data"`
	EvalData     string `yaml:"eval_data"`
	TestData     string `yaml:"test_data"`
	Niters       int    `yaml:"niters"`
	Cutoff       int    `yaml:"cutoff"`
	Reader       string `yaml:"reader"`
	Error        string `yaml:"error"`
	MlModel      string `yaml:"mlmodel"`
	Algorithm    string `yaml:"algorithm"`
	LearningRate string `yaml:"learning_rate"`
	Stopping     int    `yaml:"stopping_condition"`
	Qid          int    `yaml:"qid"`
	Doc          int    `yaml:"doc"`
	Rel          int    `yaml:"rel"`
	Shards       int    `yaml:"shards"`
	ModelOut     string `yaml:"model_out"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "ltr",
		Short:         "pairwise/listwise gradient learning to rank trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath != "" {
				if err := applyDefaults(cmd, cfgPath, &opts); err != nil {
					return err
				}
			}
			return run(cmd.Context(), opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&opts.TrainData, "train_data", "", "path to the training dataset")
	fl.StringVar(&opts.EvalData, "eval_data", "", "path to the validation dataset")
	fl.StringVar(&opts.TestData, "test_data", "", "path to the test dataset")
	fl.IntVar(&opts.Niters, "niters", 10, "iterations per phase")
	fl.IntVar(&opts.Cutoff, "cutoff", 20, "the at in measures like ndcg@20")
	fl.StringVar(&opts.Reader, "reader", "", "dataset format: csv, letor or yahoo")
	fl.StringVar(&opts.Error, "error", "ndcg", "evaluation measure")
	fl.StringVar(&opts.MlModel, "mlmodel", "linreg", "model: linreg or nn<N> with N hidden neurons")
	fl.StringVar(&opts.Algorithm, "algorithm", "ranknet", "algorithm: ranknet, ranknet_old or lambdarank")
	fl.StringVar(&opts.LearningRate, "learning_rate", "", "learning rate policy, e.g. const:0.001 or decay:0.01,10")
	fl.IntVar(&opts.Stopping, "stopping_condition", 0, "0 fixed iterations, 1 convergence")
	fl.IntVar(&opts.Qid, "qid", 0, "csv column of the query id")
	fl.IntVar(&opts.Doc, "doc", 1, "csv column of the document id")
	fl.IntVar(&opts.Rel, "rel", -1, "csv column of the relevance label, -1 for last")
	fl.IntVar(&opts.Shards, "shards", 0, "shard count, 0 for one per cpu")
	fl.StringVar(&opts.ModelOut, "model_out", "", "path to save the trained model to")
	fl.StringVar(&opts.MetricsAddr, "metrics_addr", "", "address to expose prometheus metrics on")
	fl.StringVar(&cfgPath, "config", "", "yaml defaults file; flags override it")

	return cmd
}

// applyDefaults fills in values from the yaml file for every flag the user
// did not set explicitly. The decode target starts from the current values,
// so keys absent from the file keep the flag defaults and zero values in the
// file (like rel: 0) still count as set.
func applyDefaults(cmd *cobra.Command, path string, opts *options) error {
	file := *opts
	if err := config.Load(path, &file); err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("train_data") {
		opts.TrainData = file.TrainData
	}
	if !flags.Changed("eval_data") {
		opts.EvalData = file.EvalData
	}
	if !flags.Changed("test_data") {
		opts.TestData = file.TestData
	}
	if !flags.Changed("niters") {
		opts.Niters = file.Niters
	}
	if !flags.Changed("cutoff") {
		opts.Cutoff = file.Cutoff
	}
	if !flags.Changed("reader") {
		opts.Reader = file.Reader
	}
	if !flags.Changed("error") {
		opts.Error = file.Error
	}
	if !flags.Changed("mlmodel") {
		opts.MlModel = file.MlModel
	}
	if !flags.Changed("algorithm") {
		opts.Algorithm = file.Algorithm
	}
	if !flags.Changed("learning_rate") {
		opts.LearningRate = file.LearningRate
	}
	if !flags.Changed("stopping_condition") {
		opts.Stopping = file.Stopping
	}
	if !flags.Changed("qid") {
		opts.Qid = file.Qid
	}
	if !flags.Changed("doc") {
		opts.Doc = file.Doc
	}
	if !flags.Changed("rel") {
		opts.Rel = file.Rel
	}
	if !flags.Changed("shards") {
		opts.Shards = file.Shards
	}
	if !flags.Changed("model_out") {
		opts.ModelOut = file.ModelOut
	}
	if !flags.Changed("metrics_addr") {
		opts.MetricsAddr = file.MetricsAddr
	}
	return nil
}

// run wires the configured components together and drives the phases.
// Every name is validated before any data is read, so a bad configuration
// never produces partial training output.
func run(ctx context.Context, opts options) error {
	logger := log.With().Str("run", uuid.New().String()).Logger()

	if opts.TrainData == "" {
		return fmt.Errorf("train_data is required")
	}
	if err := ml.ValidName(opts.MlModel); err != nil {
		return err
	}
	if err := ltr.ValidName(opts.Algorithm); err != nil {
		return err
	}
	measure, err := eval.New(opts.Error, opts.Cutoff)
	if err != nil {
		return err
	}
	rate, err := ml.ParseRate(opts.LearningRate)
	if err != nil {
		return err
	}
	stop, err := trainer.ParseStopping(opts.Stopping)
	if err != nil {
		return err
	}
	reader, err := dataset.New(opts.Reader, dataset.Options{
		QidColumn: opts.Qid,
		DocColumn: opts.Doc,
		RelColumn: opts.Rel,
	})
	if err != nil {
		return err
	}

	if opts.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(opts.MetricsAddr); err != nil {
				logger.Error().Err(err).Str("addr", opts.MetricsAddr).Msg("metrics endpoint failed")
			}
		}()
	}

	train, err := reader.Read(opts.TrainData)
	if err != nil {
		return err
	}
	if dropped := train.Prune(); dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("dropped queries with inconsistent features")
	}
	logger.Info().
		Str("reader", reader.Name()).
		Int("queries", len(train.Groups)).
		Int("dimensions", train.Dimensions).
		Msg("training data loaded")

	mdl, err := ml.New(opts.MlModel, train.Dimensions, rate)
	if err != nil {
		return err
	}
	alg, err := ltr.New(opts.Algorithm, mdl, measure)
	if err != nil {
		return err
	}

	t := trainer.New(mdl, alg, trainer.Config{
		Niters:  opts.Niters,
		Workers: opts.Shards,
		Stop:    stop,
	})

	report, err := t.RunPhase(ctx, model.Train, train)
	if err != nil {
		return err
	}
	logReport(logger, report)

	phases := []struct {
		phase model.Phase
		path  string
	}{
		{model.Validation, opts.EvalData},
		{model.Testing, opts.TestData},
	}
	for _, p := range phases {
		if p.path == "" {
			continue
		}
		ds, err := reader.Read(p.path)
		if err != nil {
			return err
		}
		if err := ds.PadTo(mdl.Dimensions()); err != nil {
			return err
		}
		ds.Prune()
		report, err := t.RunPhase(ctx, p.phase, ds)
		if err != nil {
			return err
		}
		logReport(logger, report)
	}

	if opts.ModelOut != "" {
		if err := mdl.Save(opts.ModelOut); err != nil {
			return err
		}
		logger.Info().Str("path", opts.ModelOut).Str("model", mdl.Name()).Msg("model saved")
	}
	return nil
}

func logReport(logger zerolog.Logger, report trainer.Report) {
	logger.Info().
		Str("phase", report.Phase.String()).
		Int("iterations", report.Iterations).
		Int("queries", report.Queries).
		Int("pairs", report.Pairs).
		Float64("measure", report.Measure).
		Float64("loss", report.Loss).
		Dur("elapsed", report.Elapsed).
		Msg("phase report")
}
