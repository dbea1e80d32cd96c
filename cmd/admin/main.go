// Command admin seeds and maintains communities and members directly
// against the database. Communities and members are never created
// through the API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"communitycash/internal/auth"
	"communitycash/internal/models"
	"communitycash/internal/storage/sqlite"
)

func main() {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "CommunityCash administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var dbPath string
	root.PersistentFlags().StringVar(&dbPath, "db", "./data/cash.db", "path to the SQLite database")

	root.AddCommand(communityCmd(&dbPath))
	root.AddCommand(memberCmd(&dbPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openStore(dbPath string) (*sqlite.SQLiteStore, error) {
	return sqlite.New(dbPath)
}

func communityCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Manage communities",
	}

	var name string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a community",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			store, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			community := &models.Community{Name: name}
			if err := store.CreateCommunity(context.Background(), community); err != nil {
				return err
			}

			fmt.Printf("Community created with ID: %d\n", community.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "community name")

	cmd.AddCommand(add)
	return cmd
}

func memberCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members",
	}

	cmd.AddCommand(memberAddCmd(dbPath))
	cmd.AddCommand(memberUpdateCmd(dbPath))
	cmd.AddCommand(memberDeleteCmd(dbPath))
	return cmd
}

func memberAddCmd(dbPath *string) *cobra.Command {
	var (
		communityID int64
		name        string
		username    string
		password    string
		pct         int
	)

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a member in a community",
		RunE: func(cmd *cobra.Command, args []string) error {
			if communityID == 0 {
				return fmt.Errorf("--community-id is required")
			}
			if name == "" || username == "" || password == "" {
				return fmt.Errorf("--name, --username and --password are required")
			}
			if pct < 0 || pct > 100 {
				return fmt.Errorf("--pct must be between 0 and 100")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			store, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			member := &models.Member{
				CommunityID:            communityID,
				Name:                   name,
				Username:               username,
				PasswordHash:           hash,
				ContributionPercentage: pct,
			}
			if err := store.CreateMember(context.Background(), member); err != nil {
				return err
			}

			fmt.Printf("Member created with ID: %d\n", member.ID)
			return nil
		},
	}

	add.Flags().Int64Var(&communityID, "community-id", 0, "owning community id")
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&username, "username", "", "unique login name")
	add.Flags().StringVar(&password, "password", "", "plaintext password, stored bcrypt-hashed")
	add.Flags().IntVar(&pct, "pct", 75, "default contribution percentage (0-100)")
	return add
}

func memberUpdateCmd(dbPath *string) *cobra.Command {
	var (
		id       int64
		name     string
		username string
		pct      int
	)

	update := &cobra.Command{
		Use:   "update",
		Short: "Update a member's name, username or contribution percentage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			var namePtr, usernamePtr *string
			var pctPtr *int
			if cmd.Flags().Changed("name") {
				namePtr = &name
			}
			if cmd.Flags().Changed("username") {
				usernamePtr = &username
			}
			if cmd.Flags().Changed("pct") {
				if pct < 0 || pct > 100 {
					return fmt.Errorf("--pct must be between 0 and 100")
				}
				pctPtr = &pct
			}
			if namePtr == nil && usernamePtr == nil && pctPtr == nil {
				return fmt.Errorf("at least one of --name, --username, --pct is required")
			}

			store, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateMember(context.Background(), id, namePtr, usernamePtr, pctPtr); err != nil {
				return err
			}

			fmt.Printf("Member %d updated\n", id)
			return nil
		},
	}

	update.Flags().Int64Var(&id, "id", 0, "member id")
	update.Flags().StringVar(&name, "name", "", "new display name")
	update.Flags().StringVar(&username, "username", "", "new login name")
	update.Flags().IntVar(&pct, "pct", 0, "new default contribution percentage")
	return update
}

func memberDeleteCmd(dbPath *string) *cobra.Command {
	var id int64

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			store, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteMember(context.Background(), id); err != nil {
				return err
			}

			fmt.Printf("Member %d deleted\n", id)
			return nil
		},
	}

	del.Flags().Int64Var(&id, "id", 0, "member id")
	return del
}
