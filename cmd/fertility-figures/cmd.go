package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fertilitydash/internal/core/export"
	pstrings "fertilitydash/internal/platform/strings"
	"fertilitydash/internal/services/api/fertility/domain"
)

// newRootCmd builds the command tree over svc; out receives results when no -o is given
func newRootCmd(svc domain.ServicePort, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fertility-figures",
		Short:         "Build fertility rate charts and tables from the World Bank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.AddCommand(newFiguresCmd(svc), newTableCmd(svc))
	return rootCmd
}

func newFiguresCmd(svc domain.ServicePort) *cobra.Command {
	var (
		outputPath string
		pretty     bool
		figure     int
	)
	cmd := &cobra.Command{
		Use:   "figures",
		Short: "Print the dashboard chart specs as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var v any
			var err error
			if figure > 0 {
				v, err = svc.Figure(cmd.Context(), figure)
			} else {
				v, err = svc.Figures(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("figures: %w", err)
			}
			data, err := marshal(v, pretty)
			if err != nil {
				return err
			}
			return emit(cmd, outputPath, data)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().IntVarP(&figure, "figure", "n", 0, "Only chart n (1..4); 0 prints all")
	return cmd
}

func newTableCmd(svc domain.ServicePort) *cobra.Command {
	var (
		outputPath string
		pretty     bool
		format     string
		countries  []string
		years      []int
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Export the observation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			var in domain.TableInput
			if cmd.Flags().Changed("country") {
				in.Countries = pstrings.Compact(countries)
			}
			if cmd.Flags().Changed("year") {
				in.Years = years
			}
			x, err := svc.Export(cmd.Context(), in, string(f))
			if err != nil {
				return fmt.Errorf("table: %w", err)
			}
			data := x.Body
			if f == export.FormatJSON && pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, data, "", "  "); err != nil {
					return fmt.Errorf("indent json: %w", err)
				}
				data = buf.Bytes()
			}
			return emit(cmd, outputPath, data)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, csv, xlsx")
	cmd.Flags().StringArrayVarP(&countries, "country", "c", nil, "Country name to keep; repeatable")
	cmd.Flags().IntSliceVarP(&years, "year", "y", nil, "Year to keep; repeatable or comma separated")
	return cmd
}

func marshal(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("serialization failed: %w", err)
	}
	return append(data, '\n'), nil
}

func emit(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
