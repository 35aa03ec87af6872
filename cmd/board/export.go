package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rsu-logistica/shift-board/backend/internal/report"
	"github.com/rsu-logistica/shift-board/backend/internal/sheets"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write a JSON snapshot of the board (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the board with a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var xlsxCmd = &cobra.Command{
	Use:   "xlsx FILE",
	Short: "Write the day report as an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runXLSX,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, xlsxCmd)
}

// createOutput 在 path 为空或为 - 时返回标准输出
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	w, closeFn, err := createOutput(cmd, optionalArg(args, 0))
	if err != nil {
		return err
	}

	if err := b.Export(w); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := b.Import(cmd.Context(), f); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "importado: %d rutas, %d personas\n", len(b.AllRoutes()), len(b.Staff()))
	return nil
}

func runXLSX(cmd *cobra.Command, args []string) error {
	w, closeFn, err := createOutput(cmd, args[0])
	if err != nil {
		return err
	}

	reports := report.Summarize(b.AllRoutes(), b.Transfers(), b.Managers())
	if err := sheets.WriteDayReport(w, b.Date(), b.AllRoutes(), reports); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}
