package main

import (
	"errors"
	"os"

	identityapp "github.com/shopadmin/backend/internal/application/identity"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const superuserPasswordEnv = "SHOP_SUPERUSER_PASSWORD"

func newCreateSuperuserCommand(e *env) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active staff account",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv(superuserPasswordEnv)
			}
			if password == "" {
				return errors.New("password required: pass --password or set " + superuserPasswordEnv)
			}

			db, err := persistence.NewDatabase(&e.cfg.Database, e.log)
			if err != nil {
				return err
			}
			defer db.Close()

			users := identityapp.NewUserService(
				persistence.NewGormUserRepository(db.DB),
				auth.NewInMemoryTokenBlacklist(),
				e.cfg.JWT.AccessTokenExpiration,
				e.log,
			)
			user, err := users.Create(c.Context(), identityapp.CreateUserRequest{
				Username: username,
				Email:    email,
				Password: password,
				IsStaff:  true,
			})
			if err != nil {
				return err
			}
			e.log.Info("Superuser created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (or "+superuserPasswordEnv+")")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
