package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	limit      int
	showRemote bool
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific session",
	Long: `Display the saved messages of a chat session, oldest first.

With --remote the history recorded by the advisory service is shown
instead. It is read only and never merged into the saved session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		if showRemote {
			exchanges, failure := layer.Client.FetchHistory(context.Background(), args[0])
			if failure != nil {
				return fmt.Errorf("remote history unavailable: %w", failure)
			}
			displayRemoteHistory(cmd.OutOrStdout(), args[0], exchanges, limit)
			return nil
		}

		session := layer.Sessions.Load(context.Background(), args[0])
		displaySession(cmd.OutOrStdout(), session, limit)
		return nil
	},
}

func displaySession(w io.Writer, session *internal.Session, limit int) {
	if session.Len() == 0 {
		fmt.Fprintln(w, sessionHeaderStyle.Render("No messages in session "+session.ID))
		return
	}

	messages := session.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	fmt.Fprintln(w, sessionHeaderStyle.Render(fmt.Sprintf("Session %s (%d message(s))", session.ID, session.Len())))

	now := time.Now()
	for _, msg := range messages {
		label := userMessageStyle.Render("You")
		if msg.Role == internal.RoleAssistant {
			label = assistantMessageStyle.Render("DigiFarmer")
			if msg.Offline {
				label += timestampStyle.Render(" (offline)")
			}
		}
		fmt.Fprintf(w, "%s %s\n", label, timestampStyle.Render(formatWhen(msg.Timestamp, now)))

		text := msg.Text
		if msg.Image != nil {
			text += fmt.Sprintf("\n[image %s, %d bytes]", msg.Image.MediaType, msg.Image.Size)
		}
		fmt.Fprintln(w, messageContentStyle.Render(text))
	}
}

func displayRemoteHistory(w io.Writer, sessionID string, exchanges []internal.RemoteExchange, limit int) {
	if len(exchanges) == 0 {
		fmt.Fprintln(w, sessionHeaderStyle.Render("No remote history for session "+sessionID))
		return
	}

	fmt.Fprintln(w, sessionHeaderStyle.Render(fmt.Sprintf("Remote history for %s (%d exchange(s))", sessionID, len(exchanges))))
	if limit > 0 && len(exchanges) > limit {
		exchanges = exchanges[len(exchanges)-limit:]
	}
	for _, e := range exchanges {
		fmt.Fprintf(w, "%s %s\n", userMessageStyle.Render("You"), timestampStyle.Render(e.Timestamp))
		fmt.Fprintln(w, messageContentStyle.Render(e.Message))
		fmt.Fprintln(w, assistantMessageStyle.Render("DigiFarmer"))
		fmt.Fprintln(w, messageContentStyle.Render(e.Response))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last N messages (or exchanges with --remote)")
	showCmd.Flags().BoolVar(&showRemote, "remote", false, "Show the history recorded by the advisory service")
}
