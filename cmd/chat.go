package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/iksnae/digifarmer-sync/internal"
	"github.com/spf13/cobra"
)

var (
	chatSession    string
	chatImage      string
	chatLanguage   string
	chatMultiModal bool
	chatLatitude   float64
	chatLongitude  float64
	chatAddress    string
	chatRegion     string
	chatCountry    string
)

var (
	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Padding(0, 2)

	offlineReplyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Padding(0, 2)
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Ask the advisory service a question",
	Long: `Send a question, a plant photo, or both to the advisory service.

The question is saved to the session before it is sent. If the service
cannot be reached, a fixed offline reply is saved in its place.

Examples:
  digifarmer chat "Best fertilizer for paddy?"
  digifarmer chat --session field-1 --lang hi "When to irrigate?"
  digifarmer chat --image leaf.jpg "yellow spots on the leaves"
  digifarmer chat --lat 30.90 --lon 75.85 --region Punjab "Which crop now?"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := internal.RequestInput{
			Text:     strings.Join(args, " "),
			Language: chatLanguage,
		}
		if in.Language == "" {
			in.Language = cfg.Language
		}
		if chatImage != "" {
			data, err := os.ReadFile(chatImage)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			in.Image = data
		}
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			in.Location = &internal.LocationSnapshot{
				Latitude:  chatLatitude,
				Longitude: chatLongitude,
				Address:   chatAddress,
				Region:    chatRegion,
				Country:   chatCountry,
			}
		}

		sessionID := chatSession
		if sessionID == "" {
			sessionID = uuid.NewString()
			internal.PrintInfo(cmd.ErrOrStderr(), "Started session "+sessionID)
		}

		flow := internal.FlowChat
		if chatMultiModal || len(in.Image) > 0 {
			flow = internal.FlowMultiModal
		}

		layer, err := openLayer()
		if err != nil {
			return err
		}
		defer layer.Close()

		conv, err := layer.Conversation(sessionID, flow)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var ex *internal.Exchange
		err = internal.ShowProgress(ctx, "Asking DigiFarmer...", func() error {
			var sendErr error
			ex, sendErr = conv.Send(ctx, in)
			return sendErr
		})
		if err != nil {
			return err
		}

		if ex.Notice != "" {
			internal.PrintWarning(cmd.ErrOrStderr(), ex.Notice)
		}
		renderReply(cmd.OutOrStdout(), ex.Reply)
		return nil
	},
}

func renderReply(w io.Writer, reply internal.Message) {
	style := replyStyle
	if reply.Offline {
		style = offlineReplyStyle
	}
	fmt.Fprintln(w, style.Render(reply.Text))
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "Session ID (a new one is generated when empty)")
	chatCmd.Flags().StringVar(&chatImage, "image", "", "Path to a plant photo for disease detection")
	chatCmd.Flags().StringVar(&chatLanguage, "lang", "", "Reply language for this message (defaults to --language)")
	chatCmd.Flags().BoolVar(&chatMultiModal, "multimodal", false, "Use the multimodal flow even without an image")
	chatCmd.Flags().Float64Var(&chatLatitude, "lat", 0, "Latitude of the field")
	chatCmd.Flags().Float64Var(&chatLongitude, "lon", 0, "Longitude of the field")
	chatCmd.Flags().StringVar(&chatAddress, "address", "", "Address of the field")
	chatCmd.Flags().StringVar(&chatRegion, "region", "", "Region or state of the field")
	chatCmd.Flags().StringVar(&chatCountry, "country", "", "Country of the field")
}
