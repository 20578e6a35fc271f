package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/diskspace/pkg/crosscheck"
	"github.com/danpilch/diskspace/pkg/output"
)

func newVerifyCmd(opts *options, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Cross-check capacity between probers and validate readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, opts, logger)
			if err != nil {
				return err
			}

			readings := a.update(cmd.Context())
			probers := crosscheck.DefaultProbers()
			w := cmd.OutOrStdout()

			failed := 0
			for i, s := range a.registry.Sensors() {
				path := s.Sampler().Config().Path
				validations, sanity, probeErrs := crosscheck.RunCrossChecks(path, probers, readings[i:i+1])
				if opts.format == string(output.FormatJSON) {
					if err := crosscheck.ReportJSON(w, validations, sanity, probeErrs); err != nil {
						return err
					}
				} else {
					crosscheck.Report(w, validations, sanity, probeErrs)
				}
				for _, v := range validations {
					if v.Status == crosscheck.StatusConflict {
						failed++
					}
				}
				for _, r := range sanity {
					if !r.Passed {
						failed++
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d cross-checks failed", failed)
			}
			return nil
		},
	}
}
