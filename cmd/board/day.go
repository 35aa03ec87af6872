package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rsu-logistica/shift-board/backend/internal/board"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/report"
	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Inspect and save the working day",
}

var dayShowCmd = &cobra.Command{
	Use:   "show [SHIFT]",
	Short: "Print the routes of every shift, or of a single shift",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDayShow,
}

var daySummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print per-shift totals",
	Args:  cobra.NoArgs,
	RunE:  runDaySummary,
}

var daySaveMasterCmd = &cobra.Command{
	Use:   "save-master",
	Short: "Store the current day as the master template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return b.SaveMaster(cmd.Context())
	},
}

var dayMigrateCmd = &cobra.Command{
	Use:   "migrate-refs",
	Short: "Rewrite legacy name references to staff ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := b.MigrateLegacyRefs(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "referencias migradas: %d\n", n)
		return nil
	},
}

var shiftCmd = &cobra.Command{
	Use:   "shift SHIFT",
	Short: "Set the supervisors and absences of a shift",
	Args:  cobra.ExactArgs(1),
	RunE:  runShiftMeta,
}

var shiftFlags struct {
	supervisor    string
	subSupervisor string
	absent        []string
}

func init() {
	shiftCmd.Flags().StringVar(&shiftFlags.supervisor, "supervisor", "", "Supervisor name")
	shiftCmd.Flags().StringVar(&shiftFlags.subSupervisor, "sub-supervisor", "", "Sub-supervisor name")
	shiftCmd.Flags().StringSliceVar(&shiftFlags.absent, "absent", nil, "Absences as ID or ID:REASON")

	dayCmd.AddCommand(dayShowCmd, daySummaryCmd, daySaveMasterCmd, dayMigrateCmd)
	rootCmd.AddCommand(dayCmd, shiftCmd)
}

func parseShift(s string) (domain.Shift, error) {
	shift := domain.Shift(strings.ToUpper(s))
	if shift == "MANANA" {
		shift = domain.ShiftMorning
	}
	if !shift.Valid() {
		return "", fmt.Errorf("%w: %s", board.ErrInvalidShift, s)
	}
	return shift, nil
}

func name(s *domain.StaffMember) string {
	if s == nil {
		return "-"
	}
	if s.Status == domain.StaffAbsent {
		return s.Name + "*"
	}
	return s.Name
}

func runDayShow(cmd *cobra.Command, args []string) error {
	shifts := domain.Shifts
	if len(args) == 1 {
		shift, err := parseShift(args[0])
		if err != nil {
			return err
		}
		shifts = []domain.Shift{shift}
	}

	out := cmd.OutOrStdout()
	for _, shift := range shifts {
		meta := b.ShiftMetadata(shift)
		fmt.Fprintf(out, "== %s %s  supervisor: %s / %s\n", b.Date(), shift, meta.Supervisor, meta.SubSupervisor)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tZONA\tCATEGORIA\tCHOFER\tAUXILIARES\tREEMPLAZOS\tESTADO\tTN")
		for _, r := range b.Routes(shift) {
			aux := make([]string, 0, len(r.Auxiliaries))
			for _, a := range r.Auxiliaries {
				aux = append(aux, name(a))
			}
			repl := []string{name(r.ReplacementDriver)}
			for _, a := range r.ReplacementAuxiliaries {
				repl = append(repl, name(a))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.1f\n",
				r.ID, r.Zone, r.Category, name(r.Driver), strings.Join(aux, ", "), strings.Join(repl, ", "), r.ZoneStatus, r.Tonnage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runDaySummary(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TURNO\tRUTAS\tCOMPLETAS\tINCOMPLETAS\tPENDIENTES\tTN RUTAS\tTN TRANSFERENCIA\tAUSENTES\tREEMPLAZOS")
	for _, r := range report.Summarize(b.AllRoutes(), b.Transfers(), b.Managers()) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f\t%.1f\t%d\t%d\n",
			r.Shift, r.Routes, r.Complete, r.Incomplete, r.Pending, r.RouteTonnage, r.TransferTonnage, r.Absences, r.ReplacementsInUse)
	}
	return tw.Flush()
}

func runShiftMeta(cmd *cobra.Command, args []string) error {
	shift, err := parseShift(args[0])
	if err != nil {
		return err
	}

	meta := b.ShiftMetadata(shift)
	flags := cmd.Flags()
	if flags.Changed("supervisor") {
		meta.Supervisor = shiftFlags.supervisor
	}
	if flags.Changed("sub-supervisor") {
		meta.SubSupervisor = shiftFlags.subSupervisor
	}
	if flags.Changed("absent") {
		meta.Absences = make([]domain.ShiftAbsence, 0, len(shiftFlags.absent))
		for _, a := range shiftFlags.absent {
			id, reason, _ := strings.Cut(a, ":")
			meta.Absences = append(meta.Absences, domain.ShiftAbsence{StaffID: id, Reason: reason})
		}
	}

	if err := b.SetShiftMetadata(meta); err != nil {
		return err
	}
	return b.Save(cmd.Context())
}
