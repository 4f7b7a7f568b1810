package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/logger"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/report"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/usecase"
)

var cliIdentity = model.Identity{UserID: "cli", Name: "cli", Level: model.LevelAdmin}

type reportOptions struct {
	start    string
	end      string
	timezone string
	format   string
	out      string
}

func newReportCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the withdrawals of a period to PDF or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			log := logger.New(cfg)

			factory, err := storage.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer factory.Close()

			reports := usecase.NewReportUseCase(factory.Withdrawals(), report.NewCache(cfg.ReportCacheTTL), cfg.ReportLocation, log)
			result, err := reports.Run(cmd.Context(), cliIdentity, opts.start, opts.end, opts.timezone)
			if err != nil {
				return err
			}
			doc, err := reports.Export(cliIdentity, opts.format)
			if err != nil {
				return err
			}

			out := opts.out
			if out == "" {
				out = doc.Filename
			}
			if err := os.WriteFile(out, doc.Data, 0o644); err != nil {
				return err
			}
			cmd.Printf("%d registros gravados em %s\n", len(result.Records), out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.start, "start", "", "first day of the period (YYYY-MM-DD)")
	flags.StringVar(&opts.end, "end", "", "last day of the period (YYYY-MM-DD)")
	flags.StringVar(&opts.timezone, "timezone", "", "IANA zone of the period boundaries")
	flags.StringVar(&opts.format, "format", usecase.FormatPDF, "export format: pdf or xlsx")
	flags.StringVar(&opts.out, "out", "", "output file, defaults to the export's own name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
