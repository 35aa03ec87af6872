package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rsu-logistica/shift-board/backend/internal/board"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/sheets"
	"github.com/spf13/cobra"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage the staff roster",
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff members",
	Args:  cobra.NoArgs,
	RunE:  runStaffList,
}

var staffAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a staff member",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffAdd,
}

var staffEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a staff member and propagate the change to every slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffEdit,
}

var staffRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a staff member from the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffRemove,
}

var staffImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a roster from an .xlsx or .csv file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffImport,
}

var staffFlags struct {
	id         string
	name       string
	status     string
	role       string
	shift      string
	zone       string
	reason     string
	indefinite bool
	showAll    bool
}

func init() {
	staffListCmd.Flags().BoolVar(&staffFlags.showAll, "all", false, "Include absent staff")

	for _, c := range []*cobra.Command{staffAddCmd, staffEditCmd} {
		c.Flags().StringVar(&staffFlags.status, "status", "", "PRESENT, ABSENT or RESERVA")
		c.Flags().StringVar(&staffFlags.role, "role", "", "CHOFER, AUXILIAR, SUPERVISOR or PLANTA")
		c.Flags().StringVar(&staffFlags.shift, "shift", "", "Preferred shift")
		c.Flags().StringVar(&staffFlags.zone, "zone", "", "Assigned zone")
		c.Flags().StringVar(&staffFlags.reason, "reason", "", "Absence reason code")
	}
	staffAddCmd.Flags().StringVar(&staffFlags.id, "id", "", "Legajo (generated when empty)")
	staffEditCmd.Flags().StringVar(&staffFlags.name, "name", "", "New name")
	staffEditCmd.Flags().BoolVar(&staffFlags.indefinite, "indefinite", false, "Mark the absence as indefinite")

	staffCmd.AddCommand(staffListCmd, staffAddCmd, staffEditCmd, staffRemoveCmd, staffImportCmd)
	rootCmd.AddCommand(staffCmd)
}

func runStaffList(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEGAJO\tNOMBRE\tESTADO\tROL\tTURNO\tZONA")
	for _, s := range b.Staff() {
		if s.Status == domain.StaffAbsent && !staffFlags.showAll {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Status, s.Role, s.PreferredShift, s.AssignedZone)
	}
	return tw.Flush()
}

// applyStaffFlags 只修改命令行中显式给出的字段
func applyStaffFlags(cmd *cobra.Command, m *domain.StaffMember) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		m.Name = strings.ToUpper(staffFlags.name)
	}
	if flags.Changed("status") {
		m.Status = domain.StaffStatus(strings.ToUpper(staffFlags.status))
	}
	if flags.Changed("role") {
		m.Role = domain.StaffRole(strings.ToUpper(staffFlags.role))
	}
	if flags.Changed("shift") {
		m.PreferredShift = domain.Shift(strings.ToUpper(staffFlags.shift))
	}
	if flags.Changed("zone") {
		m.AssignedZone = staffFlags.zone
	}
	if flags.Changed("reason") {
		m.Address = staffFlags.reason
	}
	if flags.Changed("indefinite") {
		m.IsIndefiniteAbsence = staffFlags.indefinite
	}
	if m.Status != domain.StaffAbsent {
		m.Address = ""
		m.IsIndefiniteAbsence = false
	}
}

func runStaffAdd(cmd *cobra.Command, args []string) error {
	m := domain.StaffMember{
		ID:   staffFlags.id,
		Name: strings.ToUpper(args[0]),
	}
	applyStaffFlags(cmd, &m)

	added, err := b.AddStaff(cmd.Context(), m)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "agregado %s %s\n", added.ID, added.Name)
	return nil
}

func runStaffEdit(cmd *cobra.Command, args []string) error {
	current, ok := b.StaffByID(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", board.ErrStaffNotFound, args[0])
	}

	m := *current
	applyStaffFlags(cmd, &m)

	n, err := b.UpdateStaff(cmd.Context(), m)
	if err != nil {
		return err
	}
	if err := b.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "actualizado %s (%d puestos)\n", m.ID, n)
	return nil
}

func runStaffRemove(cmd *cobra.Command, args []string) error {
	if err := b.RemoveStaff(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "eliminado %s\n", args[0])
	return nil
}

func runStaffImport(cmd *cobra.Command, args []string) error {
	members, err := sheets.ReadStaffFile(args[0])
	if err != nil {
		return err
	}

	added, updated, err := b.ImportStaff(cmd.Context(), members)
	if err != nil {
		return err
	}
	if err := b.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "importados: %d nuevos, %d actualizados\n", added, updated)
	return nil
}
