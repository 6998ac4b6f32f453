package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Soxxes/HLLLogUtilities/internal/storage"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored session and its events",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.DeleteSession(id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Session %d deleted\n", id)
	return nil
}
