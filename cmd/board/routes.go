package main

import (
	"fmt"
	"strings"

	"github.com/rsu-logistica/shift-board/backend/internal/board"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/scheduler"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Create, edit and staff routes",
}

var routeNewCmd = &cobra.Command{
	Use:   "new SHIFT ZONE",
	Short: "Append a route to a shift",
	Args:  cobra.ExactArgs(2),
	RunE:  runRouteNew,
}

var routeDeleteCmd = &cobra.Command{
	Use:   "delete ROUTE_ID",
	Short: "Delete a route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := b.DeleteRoute(args[0]); err != nil {
			return err
		}
		return b.Save(cmd.Context())
	},
}

var routeAssignCmd = &cobra.Command{
	Use:   "assign ROUTE_ID SLOT [STAFF_ID]",
	Short: "Put a staff member in a slot, or clear it when STAFF_ID is omitted",
	Long: `Slots: driver, aux1..aux4, replacement-driver, replacement1..replacement2.

A replacement driver is only accepted while the titular driver is absent.
Replacement auxiliaries are limited to one per absent auxiliary.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRouteAssign,
}

var routeSetCmd = &cobra.Command{
	Use:   "set ROUTE_ID",
	Short: "Update the progress fields of a route",
	Args:  cobra.ExactArgs(1),
	RunE:  runRouteSet,
}

var routeAutofillCmd = &cobra.Command{
	Use:   "autofill SHIFT",
	Short: "Fill empty driver and auxiliary slots with available staff",
	Args:  cobra.ExactArgs(1),
	RunE:  runRouteAutofill,
}

var transferCmd = &cobra.Command{
	Use:   "transfer SHIFT SLOT [STAFF_ID]",
	Short: "Staff the transfer station of a shift",
	Long: `Slots: maquinista, encargado, lonero, lonero-backup, unit1..unit3,
tolva1..tolva3, transfer1..transfer2, balancero1..balancero2.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runTransferAssign,
}

var routeFlags struct {
	category  string
	status    string
	tonnage   float64
	departure string
	arrival   string
	report    string
	dryRun    bool
}

func init() {
	routeNewCmd.Flags().StringVar(&routeFlags.category, "category", string(domain.CategoryCollection), "Route category")

	routeSetCmd.Flags().StringVar(&routeFlags.status, "status", "", "PENDIENTE, COMPLETA or INCOMPLETA")
	routeSetCmd.Flags().Float64Var(&routeFlags.tonnage, "tonnage", 0, "Collected tonnage")
	routeSetCmd.Flags().StringVar(&routeFlags.departure, "departure", "", "Departure time (HH:MM)")
	routeSetCmd.Flags().StringVar(&routeFlags.arrival, "arrival", "", "Arrival time (HH:MM)")
	routeSetCmd.Flags().StringVar(&routeFlags.report, "report", "", "Supervision report")

	routeAutofillCmd.Flags().BoolVar(&routeFlags.dryRun, "dry-run", false, "Print the suggestion without saving")

	routeCmd.AddCommand(routeNewCmd, routeDeleteCmd, routeAssignCmd, routeSetCmd, routeAutofillCmd)
	rootCmd.AddCommand(routeCmd, transferCmd)
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func runRouteNew(cmd *cobra.Command, args []string) error {
	shift, err := parseShift(args[0])
	if err != nil {
		return err
	}

	rec, err := b.NewRoute(shift, args[1], domain.RouteCategory(strings.ToUpper(routeFlags.category)))
	if err != nil {
		return err
	}
	if err := b.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ruta creada %s\n", rec.ID)
	return nil
}

func runRouteAssign(cmd *cobra.Command, args []string) error {
	slot, err := board.ParseSlot(args[1])
	if err != nil {
		return err
	}
	if err := b.Assign(args[0], slot, optionalArg(args, 2)); err != nil {
		return err
	}
	return b.Save(cmd.Context())
}

func runRouteSet(cmd *cobra.Command, args []string) error {
	rec, err := b.Route(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("status") {
		rec.ZoneStatus = domain.ZoneStatus(strings.ToUpper(routeFlags.status))
	}
	if flags.Changed("tonnage") {
		rec.Tonnage = routeFlags.tonnage
	}
	if flags.Changed("departure") {
		rec.DepartureTime = routeFlags.departure
	}
	if flags.Changed("arrival") {
		rec.ArrivalTime = routeFlags.arrival
	}
	if flags.Changed("report") {
		rec.SupervisionReport = routeFlags.report
	}

	if err := b.UpdateRoute(rec); err != nil {
		return err
	}
	return b.Save(cmd.Context())
}

func runTransferAssign(cmd *cobra.Command, args []string) error {
	shift, err := parseShift(args[0])
	if err != nil {
		return err
	}
	if err := b.AssignTransfer(shift, args[1], optionalArg(args, 2)); err != nil {
		return err
	}
	return b.Save(cmd.Context())
}

func runRouteAutofill(cmd *cobra.Command, args []string) error {
	shift, err := parseShift(args[0])
	if err != nil {
		return err
	}

	assignments, err := b.AutoFill(shift, scheduler.DefaultParameters())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range assignments {
		slot := board.Slot{Kind: board.SlotAuxiliary, Index: a.AuxIndex}
		if a.Driver {
			slot = board.Slot{Kind: board.SlotDriver}
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", a.RouteID, slot, a.StaffID)
	}
	if routeFlags.dryRun {
		return nil
	}
	return b.Save(cmd.Context())
}
