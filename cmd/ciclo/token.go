package main

import (
	"fmt"
	"log"
	"time"

	"github.com/dangerclosesec/ciclo/internal/auth"
	"github.com/dangerclosesec/ciclo/internal/config"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenExpiry  time.Duration
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Subject the token is issued to")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 0, "Token lifetime (defaults to the server setting)")

	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin token for the audit endpoints",
	Long:  `Sign an admin JWT with JWT_SECRET, the same secret the API server verifies with.`,
	Run: func(cmd *cobra.Command, args []string) {
		if tokenSubject == "" {
			log.Fatal("Subject is required")
		}

		cfg := config.Load()
		expiry := cfg.JWT.ExpiryPeriod
		if tokenExpiry > 0 {
			expiry = tokenExpiry
		}

		token, err := auth.NewTokenManager(cfg.JWT.Secret, expiry).Generate(tokenSubject, auth.RoleAdmin)
		if err != nil {
			log.Fatalf("Failed to sign token: %v", err)
		}
		fmt.Println(token)
	},
}
