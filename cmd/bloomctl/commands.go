package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bloomview/bloomview-api/internal/console"
)

// unlock builds a console and logs in with the configured passcode.
func unlock(ctx context.Context) (*console.Console, error) {
	if passcode == "" {
		return nil, fmt.Errorf("no passcode: pass --passcode or set BLOOMVIEW_PASSCODE")
	}

	c := console.New(console.NewClient(apiBase))
	if err := c.Login(ctx, passcode); err != nil {
		if errors.Is(err, console.ErrUnauthorized) {
			return nil, fmt.Errorf("invalid passcode")
		}
		var netErr *console.NetworkError
		if errors.As(err, &netErr) {
			return nil, fmt.Errorf("cannot reach the backend at %s: %v\nIs the API server running?", apiBase, netErr.Err)
		}
		return nil, err
	}
	return c, nil
}

// --- leads ---

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Manage captured leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		c, err := unlock(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Logout()

		leads := c.Filter(filter)
		if len(leads) == 0 {
			fmt.Println("no leads")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tNAME\tEMAIL\tSERVICE\tCREATED")
		for _, l := range leads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.Status, l.Name, l.Email, l.Service,
				l.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var leadsStatusCmd = &cobra.Command{
	Use:   "status <id> <new|contacted|resolved>",
	Short: "Set a lead's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := unlock(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Logout()

		if err := c.SetStatus(cmd.Context(), args[0], args[1]); err != nil {
			if errors.Is(err, console.ErrNotFound) {
				return fmt.Errorf("no lead with id %s", args[0])
			}
			return err
		}

		fmt.Printf("lead %s is now %s\n", args[0], args[1])
		return nil
	},
}

var leadsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Permanently delete lead %s?", args[0])) {
			fmt.Println("aborted")
			return nil
		}

		c, err := unlock(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Logout()

		if err := c.Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, console.ErrNotFound) {
				return fmt.Errorf("no lead with id %s", args[0])
			}
			return err
		}

		fmt.Printf("lead %s deleted\n", args[0])
		return nil
	},
}

// --- watch ---

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch backend connectivity (probes /health every 5s)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		monitor := console.NewMonitor(console.NewClient(apiBase))
		monitor.OnChange(func(state console.ConnState) {
			switch state {
			case console.ConnConnected:
				fmt.Println("backend: connected")
			case console.ConnDisconnected:
				fmt.Println("backend: disconnected")
				fmt.Printf("  - check that the API server is running and reachable at %s\n", apiBase)
				fmt.Println("  - if the console runs on HTTPS against a local HTTP backend, the browser may block mixed content")
			}
		})

		fmt.Printf("watching %s (Ctrl-C to stop)\n", apiBase)
		monitor.Run(ctx)
		return nil
	},
}

// --- submit ---

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a test inquiry to the public intake endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		service, _ := cmd.Flags().GetString("service")
		message, _ := cmd.Flags().GetString("message")

		client := console.NewClient(apiBase)
		id, err := client.SubmitInquiry(cmd.Context(), name, email, service, message)
		if err != nil {
			return err
		}

		fmt.Printf("created lead %s\n", id)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	leadsCmd.AddCommand(leadsListCmd, leadsStatusCmd, leadsDeleteCmd)

	leadsListCmd.Flags().String("filter", "", "case-insensitive match over name, email and service")
	leadsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	submitCmd.Flags().String("name", "Test User", "submitter name")
	submitCmd.Flags().String("email", "test@example.com", "submitter email")
	submitCmd.Flags().String("service", "IT Solutions", "requested service")
	submitCmd.Flags().String("message", "Hello from bloomctl", "inquiry message")
}
