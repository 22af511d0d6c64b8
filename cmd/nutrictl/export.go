package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/nutribalance/internal/export"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

type exportOptions struct {
	dir       string
	bucket    string
	prefix    string
	region    string
	accessKey string
	secretKey string
	name      string
}

func newExportCommand(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the submission log as CSV to a directory or S3",
		Example: `  nutrictl export --db nutri.db --dir ./exports
  nutrictl export --db nutri.db --s3-bucket nutri-exports --s3-prefix daily --region eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger(cmd)
			ws, closeFn, err := root.openWorkspace(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer closeFn()

			csv := service.NewAnalysisService(ws, nil, log).ExportCSV(cmd.Context())
			if csv == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "submission log is empty")
			}

			var sink export.Sink = export.FileSink{Dir: opts.dir}
			if opts.bucket != "" {
				sink, err = export.NewS3Sink(cmd.Context(), export.S3Options{
					Bucket:    opts.bucket,
					Prefix:    opts.prefix,
					Region:    opts.region,
					AccessKey: opts.accessKey,
					SecretKey: opts.secretKey,
				})
				if err != nil {
					return err
				}
			}

			location, err := sink.Write(cmd.Context(), opts.name, []byte(csv))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory for the CSV file")
	cmd.Flags().StringVar(&opts.name, "name", export.FileName, "Export file name or object key")
	cmd.Flags().StringVar(&opts.bucket, "s3-bucket", "", "Upload to this S3 bucket instead of a directory")
	cmd.Flags().StringVar(&opts.prefix, "s3-prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&opts.accessKey, "access-key", "", "AWS access key (default credential chain when empty)")
	cmd.Flags().StringVar(&opts.secretKey, "secret-key", "", "AWS secret key")

	return cmd
}
