// Command salonctl is the operator tool for administrative changes to
// profiles. Every run authenticates the operator and writes an audit entry.
//
//	SALONCTL_OPERATOR_SECRET=... salonctl grant-admin --operator alice --email ana@example.com
//	SALONCTL_OPERATOR_SECRET=... salonctl revoke-admin --operator alice --email ana@example.com
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/admin"
	"github.com/harentsoaR/nail-salon-api/internal/config"
	"github.com/harentsoaR/nail-salon-api/internal/logging"
	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/session"
	"github.com/harentsoaR/nail-salon-api/internal/store"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// errFailed marks a command that ran and failed; its cause is already reported.
var errFailed = errors.New("command failed")

// opener connects to the elevated store and returns a release func.
type opener func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (admin.Store, func(), error)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr, openMongo))
}

func openMongo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (admin.Store, func(), error) {
	c, err := store.ConnectAdmin(ctx, cfg.MongoAdminURI, cfg.MongoDatabase, logger)
	if err != nil {
		return nil, nil, err
	}
	return store.NewAdminStore(c), func() { c.Close(context.Background()) }, nil
}

func newRootCmd(getenv func(string) string, open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "salonctl",
		Short:         "Operator tool for salon profile administration",
		Long:          "Operator tool for salon profile administration.\nThe operator secret is read from SALONCTL_OPERATOR_SECRET.",
		SilenceErrors: true,
	}
	root.AddCommand(
		newSetAdminCmd("grant-admin", "Give a profile admin rights", true, getenv, open),
		newSetAdminCmd("revoke-admin", "Remove admin rights from a profile", false, getenv, open),
	)
	return root
}

func newSetAdminCmd(name, short string, grant bool, getenv func(string) string, open opener) *cobra.Command {
	var operatorName, email string
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return setAdmin(cmd, getenv, open, operatorName, email, grant)
		},
	}
	cmd.Flags().StringVar(&operatorName, "operator", "", "operator name recorded in the audit log")
	cmd.Flags().StringVar(&email, "email", "", "email of the profile to change")
	cmd.MarkFlagRequired("operator")
	cmd.MarkFlagRequired("email")
	return cmd
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer, open opener) int {
	root := newRootCmd(getenv, open)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if len(args) == 0 {
		root.Usage()
		return exitUsage
	}
	if err := root.Execute(); err != nil {
		if errors.Is(err, errFailed) {
			return exitFail
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func setAdmin(cmd *cobra.Command, getenv func(string) string, open opener, operatorName, email string, grant bool) error {
	stderr := cmd.ErrOrStderr()

	cfg, err := config.FromEnv(getenv)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return errFailed
	}
	logger, err := logging.New(cfg.Development())
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return errFailed
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, release, err := open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", zap.Error(err))
		return errFailed
	}
	defer release()

	operator, err := admin.Authenticate(operatorName, getenv("SALONCTL_OPERATOR_SECRET"), cfg.OperatorSecretHash)
	if err != nil {
		logger.Error("operator authentication failed", zap.String("operator", operatorName), zap.Error(err))
		if auditErr := st.RecordAudit(ctx, &models.AuditEntry{
			Operator:    "operator:" + operatorName,
			Action:      "authenticate",
			TargetEmail: email,
			Outcome:     models.AuditFailed,
			Detail:      err.Error(),
		}); auditErr != nil {
			logger.Error("audit write failed", zap.Error(auditErr))
		}
		return errFailed
	}

	holder := session.NewHolder()
	defer holder.Close()
	holder.Subscribe(func(ev session.Event) {
		logger.Info("operator session", zap.String("event", ev.Type.String()), zap.String("operator", ev.Identity.UserID))
	})
	if err := holder.SignIn(operator); err != nil {
		logger.Error("operator sign-in", zap.Error(err))
		return errFailed
	}

	svc := admin.NewService(st, holder, logger)
	profile, err := svc.SetAdmin(ctx, email, grant)
	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %v\n", cmd.Name(), err)
		return errFailed
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is_admin: %t\n", profile.Email, profile.IsAdmin)
	return nil
}
