package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"parking-ops/core/config"
	"parking-ops/core/database"
	"parking-ops/core/logger"
	"parking-ops/core/reconcile"
	"parking-ops/feature/operations"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	facilityFlag int64
	statusFlag   string
	searchFlag   string
	fromFlag     string
	toFlag       string
	jsonFlag     bool
	sampleFlag   int
)

// operationsCmd is the parent command for the operation view.
var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "Inspect the reconciled operations of a facility",
	Long: `Reconciles reservations, occupations and payments of a facility
into operations and prints them, or audits the anomalies found on the way.`,
}

// operationsListCmd prints the filtered operation list.
var operationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reconciled operations, newest first",
	Long: `Lists the operations of a facility, newest first.

Examples:
  # Everything for the configured facility
  operations list

  # Active and pending operations of facility 3 matching a plate
  operations list --facility 3 --status active,pending --q abc123

  # Operations of one day as JSON
  operations list --from 2024-01-15 --to 2024-01-15 --json`,
	RunE: runOperationsList,
}

// operationsAuditCmd prints the reconciliation summary and anomalies.
var operationsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report reconciliation anomalies of a facility",
	RunE:  runOperationsAudit,
}

func init() {
	operationsCmd.AddCommand(operationsListCmd, operationsAuditCmd)

	operationsCmd.PersistentFlags().Int64Var(&facilityFlag, "facility", 0, "Facility id (defaults to SERVER_FACILITY)")
	operationsCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print JSON to stdout")

	operationsListCmd.Flags().StringVar(&statusFlag, "status", "", "Comma separated final statuses")
	operationsListCmd.Flags().StringVar(&searchFlag, "q", "", "Search occupant, plate, space or operation id")
	operationsListCmd.Flags().StringVar(&fromFlag, "from", "", "Lower bound of the operation date")
	operationsListCmd.Flags().StringVar(&toFlag, "to", "", "Upper bound of the operation date")

	operationsAuditCmd.Flags().IntVar(&sampleFlag, "sample", 10, "Number of anomalies to print")

	RootCmd.AddCommand(operationsCmd)
}

// openOperations loads configuration and connects the operations service.
// The database is required here, unlike for the server.
func openOperations() (*operations.Service, *zap.Logger, int64, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := operations.NewService(operations.NewDBSource(db), l)
	return svc, l, cfg.Server.FacilityOr(facilityFlag), nil
}

func runOperationsList(cmd *cobra.Command, args []string) error {
	filter, err := operations.ParseFilter(statusFlag, searchFlag, fromFlag, toFlag)
	if err != nil {
		return err
	}

	svc, l, facility, err := openOperations()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ops, summary, err := svc.List(ctx, facility, filter)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	if jsonFlag {
		return printJSON(operations.ListResponse{
			Facility:   facility,
			Count:      len(ops),
			Operations: ops,
			Summary:    summary,
		})
	}

	for _, op := range ops {
		l.Info("Operation", operationFields(op)...)
	}
	printSummary(l, facility, summary)
	if !filter.IsZero() {
		l.Info("Filter applied", zap.Int("shown", len(ops)), zap.Int("total", summary.Operations))
	}
	return nil
}

func runOperationsAudit(cmd *cobra.Command, args []string) error {
	svc, l, facility, err := openOperations()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := svc.Audit(ctx, facility)
	if err != nil {
		return fmt.Errorf("failed to audit facility: %w", err)
	}

	if jsonFlag {
		return printJSON(report)
	}

	printSummary(l, facility, report.Summary)
	printAnomalies(l, report.Anomalies, sampleFlag)
	return nil
}

// reportedStatuses fixes the field order of the report.
var reportedStatuses = []reconcile.Status{
	reconcile.StatusPending,
	reconcile.StatusConfirmed,
	reconcile.StatusActive,
	reconcile.StatusFinalized,
	reconcile.StatusFinalizedPaid,
	reconcile.StatusCancelled,
	reconcile.StatusExpired,
	reconcile.StatusNoShow,
}

// printSummary logs the aggregate counts of a reconciliation run.
func printSummary(l *zap.Logger, facility int64, s reconcile.Summary) {
	fields := []zap.Field{
		zap.Int64("facility", facility),
		zap.Int("reservations", s.Reservations),
		zap.Int("occupations", s.Occupations),
		zap.Int("payments", s.Payments),
		zap.Int("walk_ins", s.WalkIns),
		zap.Int("operations", s.Operations),
		zap.Int("anomalies", s.Anomalies),
	}
	for _, status := range reportedStatuses {
		if n := s.ByStatus[status]; n > 0 {
			fields = append(fields, zap.Int(string(status), n))
		}
	}
	l.Info("Reconciliation report", fields...)
}

// printAnomalies logs at most limit anomalies and the number left out.
func printAnomalies(l *zap.Logger, anomalies []reconcile.Anomaly, limit int) {
	if len(anomalies) == 0 {
		l.Info("No anomalies found.")
		return
	}

	shown := len(anomalies)
	if limit >= 0 && shown > limit {
		shown = limit
	}
	for _, a := range anomalies[:shown] {
		l.Warn("Anomaly",
			zap.String("kind", string(a.Kind)),
			zap.String("ref", a.Ref),
			zap.String("detail", a.Detail),
		)
	}
	if len(anomalies) > shown {
		l.Info("Additional anomalies not shown", zap.Int("count", len(anomalies)-shown))
	}
}

func operationFields(op reconcile.Operation) []zap.Field {
	fields := []zap.Field{
		zap.String("id", op.ID),
		zap.String("status", string(op.FinalStatus)),
	}
	if op.Occupant.Name != "" {
		fields = append(fields, zap.String("occupant", op.Occupant.Name))
	}
	if op.Vehicle.Plate != "" {
		fields = append(fields, zap.String("plate", op.Vehicle.Plate))
	}
	if op.Space != nil {
		fields = append(fields, zap.String("space", op.Space.Code))
	}
	if key := reconcile.RecencyKey(op); key != nil {
		fields = append(fields, zap.Time("at", *key))
	}
	if op.Payment != nil {
		fields = append(fields, zap.Float64("amount", op.Payment.Amount))
	}
	if len(op.Timeline) > 0 {
		steps := make([]string, 0, len(op.Timeline))
		for _, e := range op.Timeline {
			steps = append(steps, string(e.Key))
		}
		fields = append(fields, zap.String("timeline", strings.Join(steps, ">")))
	}
	return fields
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
