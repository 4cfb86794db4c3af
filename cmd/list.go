package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// sessionSummary is one row of the session list
type sessionSummary struct {
	ID       string
	Messages int
	Last     time.Time
	Preview  string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	Long:  `List every chat session kept in the local store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		ctx := context.Background()
		ids, err := layer.Sessions.List(ctx)
		if err != nil {
			return err
		}

		summaries := make([]sessionSummary, 0, len(ids))
		for _, id := range ids {
			summaries = append(summaries, summarizeSession(layer.Sessions.Load(ctx, id)))
		}
		displaySessions(cmd.OutOrStdout(), summaries, time.Now())
		return nil
	},
}

func summarizeSession(session *internal.Session) sessionSummary {
	summary := sessionSummary{ID: session.ID, Messages: session.Len()}
	if last, ok := session.Last(); ok {
		summary.Last = last.Timestamp
	}
	for _, msg := range session.Messages {
		if msg.Role == internal.RoleUser {
			summary.Preview = msg.Text
			break
		}
	}
	return summary
}

func displaySessions(out io.Writer, summaries []sessionSummary, now time.Time) {
	if len(summaries) == 0 {
		fmt.Fprintln(out, headerStyle.Render("No sessions found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(summaries))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("First question")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last activity")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, s := range summaries {
		preview := s.Preview
		if preview == "" {
			preview = "Untitled"
		}
		if len([]rune(preview)) > 40 {
			preview = string([]rune(preview)[:37]) + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			idStyle.Render(s.ID),
			preview,
			countStyle.Render(strconv.Itoa(s.Messages)),
			dateStyle.Render(formatWhen(s.Last, now)),
		)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
