package main

import (
	"fmt"
	"os"

	"github.com/riferrei/srclient"
	"github.com/spf13/cobra"
	"github.com/tryfix/log"

	"github.com/ecliptical/ksrt"
)

// set via -ldflags "-X main.version=..."
var version = `dev`

var logger log.Logger

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           `ksrt`,
		Short:         `Manage schemas in the Kafka Schema Registry`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.INFO
			if verbose {
				level = log.TRACE
			}

			logger = log.Constructor.Log(log.WithLevel(level), log.WithColors(false))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, `verbose`, `v`, false, `enable verbose logging`)

	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newPostCommand())

	return cmd
}

func newGetCommand() *cobra.Command {
	var (
		topic    string
		record   string
		topicKey bool
		validate bool
	)

	cmd := &cobra.Command{
		Use:   `get [flags] SCHEMA_REGISTRY_URL...`,
		Short: `Retrieve an existing schema from the Kafka Schema Registry`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := ksrt.NewSubjectNameStrategy(topic, record, topicKey)
			if err != nil {
				return err
			}

			reg, err := newRegistry(args, validate)
			if err != nil {
				return err
			}

			schema, err := reg.GetSchema(strategy)
			if err != nil {
				return err
			}

			ksrt.FprintSchema(cmd.OutOrStdout(), schema)

			return nil
		},
	}

	cmd.Flags().StringVar(&topic, `topic`, ``, `topic name (required unless --record is specified)`)
	cmd.Flags().StringVar(&record, `record`, ``, `record name (required unless --topic is specified)`)
	cmd.Flags().BoolVarP(&topicKey, `topic-key`, `k`, false, `whether the schema is for the topic key (vs. value)`)
	cmd.Flags().BoolVar(&validate, `validate`, false, `parse-check the retrieved schema where supported`)

	return cmd
}

func newPostCommand() *cobra.Command {
	var (
		schemaType    string
		topic         string
		record        string
		topicKey      bool
		file          string
		includes      []string
		stripComments bool
	)

	cmd := &cobra.Command{
		Use:   `post [flags] SCHEMA_REGISTRY_URL...`,
		Short: `Post a schema to the Kafka Schema Registry`,
		Long: `Post a schema to the Kafka Schema Registry.
This will create a new schema version for the given subject unless there is
already an existing version with the equivalent schema.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := ksrt.NewSubjectNameStrategy(topic, record, topicKey)
			if err != nil {
				return err
			}

			st, err := parseSchemaType(schemaType)
			if err != nil {
				return err
			}

			supplied, err := ksrt.BuildSchema(st, file, includes, stripComments)
			if err != nil {
				return err
			}

			reg, err := newRegistry(args, false)
			if err != nil {
				return err
			}

			schema, err := reg.PostSchema(strategy.Subject(), supplied)
			if err != nil {
				return err
			}

			ksrt.FprintSchema(cmd.OutOrStdout(), schema)

			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaType, `type`, `T`, ``, `schema type (one of avro, json, or protobuf)`)
	cmd.Flags().StringVar(&topic, `topic`, ``, `topic name (required unless --record is specified)`)
	cmd.Flags().StringVar(&record, `record`, ``, `record name (required unless --topic is specified)`)
	cmd.Flags().BoolVarP(&topicKey, `topic-key`, `k`, false, `whether the schema is for the topic key (vs. value)`)
	cmd.Flags().StringVarP(&file, `file`, `f`, ``, `schema file`)
	cmd.Flags().StringArrayVarP(&includes, `include`, `I`, nil, `include directory for any references (may be repeated)`)
	cmd.Flags().BoolVar(&stripComments, `strip-comments`, false, `strip comments from dependency schemas`)

	cobra.CheckErr(cmd.MarkFlagRequired(`type`))
	cobra.CheckErr(cmd.MarkFlagRequired(`file`))

	return cmd
}

func newRegistry(urls []string, validate bool) (*ksrt.Registry, error) {
	opts := []ksrt.Option{ksrt.WithLogger(logger)}
	if validate {
		opts = append(opts, ksrt.WithSchemaValidation())
	}

	if username := os.Getenv(`SCHEMA_REGISTRY_USERNAME`); username != `` {
		opts = append(opts, ksrt.WithCredentials(username, os.Getenv(`SCHEMA_REGISTRY_PASSWORD`)))
	}

	if len(urls) > 1 {
		logger.Warn(`ksrt`, fmt.Sprintf(`multiple registry URLs given; using %s`, urls[0]))
	}

	return ksrt.NewRegistry(urls[0], opts...)
}

func parseSchemaType(s string) (srclient.SchemaType, error) {
	switch s {
	case `avro`:
		return srclient.Avro, nil
	case `json`:
		return srclient.Json, nil
	case `protobuf`:
		return srclient.Protobuf, nil
	default:
		return ``, fmt.Errorf(`unsupported schema type: %s`, s)
	}
}
