package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/auth"
	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/utils"
)

func CreateAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			v, err := forms.LoginSchema.Validate(forms.Form{"email": email, "password": password})
			if err != nil {
				return err
			}

			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			tokens := utils.TokenIssuer{Key: []byte(rt.cfg.JWT.SigningKey), Issuer: rt.cfg.JWT.Issuer, Expiration: rt.cfg.JWT.Expiration}
			service := auth.NewService(rt.store, tokens, nil, rt.log)
			id, err := service.CreateAdmin(context.Background(), v.String("email"), v.String("password"))
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			rt.log.Info("Admin created", zap.String("id", id), zap.String("email", v.String("email")))
			fmt.Printf("Admin %s created\n", v.String("email"))
			return nil
		},
	}

	cmd.Flags().String("email", "", "Admin email address")
	cmd.Flags().String("password", "", "Admin password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
