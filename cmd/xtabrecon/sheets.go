package main

import (
	"fmt"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <published> [recreated]",
	Short: "List the sheets of one or two workbooks",
	Long: `Sheets lists worksheet names. With two workbooks it shows which sheets
exist on each side; only sheets present in both are compared by default.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSheets,
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
}

func runSheets(cmd *cobra.Command, args []string) error {
	published, err := grid.Open(args[0])
	if err != nil {
		return recon.NewInputError(args[0], "", err)
	}
	defer published.Close()

	if len(args) == 1 {
		for _, name := range published.SheetNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	recreated, err := grid.Open(args[1])
	if err != nil {
		return recon.NewInputError(args[1], "", err)
	}
	defer recreated.Close()

	inRecreated := make(map[string]bool)
	for _, name := range recreated.SheetNames() {
		inRecreated[name] = true
	}
	inPublished := make(map[string]bool)

	data := pterm.TableData{{"Sheet", "Published", "Recreated"}}
	for _, name := range published.SheetNames() {
		inPublished[name] = true
		data = append(data, []string{name, "yes", yesNo(inRecreated[name])})
	}
	for _, name := range recreated.SheetNames() {
		if !inPublished[name] {
			data = append(data, []string{name, "no", "yes"})
		}
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Info.Sprintf("%d sheet(s) in common", len(recon.CommonSheets(published, recreated))))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
