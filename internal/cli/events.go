package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput bool
		count      int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream game events",
		Long: `Connect to the game's websocket endpoint and stream events in real-time.

Events include:
  - player_joined: A player took a seat
  - player_ready: A player marked ready
  - game_started: Planets were generated
  - fleet_deployed: A fleet was launched

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), jsonOutput, count)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().IntVar(&count, "count", 0, "Disconnect after this many events (0 streams until interrupted)")

	return cmd
}

// StreamEvent is a received event
type StreamEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Player    string          `json:"player,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func eventsURL(serverURL string) string {
	base := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/api/v1/events"
}

func streamEvents(ctx context.Context, w io.Writer, jsonOutput bool, count int) error {
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, eventsURL(cfg.ServerURL), header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Unblock the read loop on cancellation
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Fprintln(w, "Connected")
	}

	for received := 0; count == 0 || received < count; received++ {
		var event StreamEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printEvent(w, event, jsonOutput)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, event StreamEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(event)
		fmt.Fprintln(w, string(data))
		return
	}

	timestamp := event.Timestamp.Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s", timestamp, event.Type)
	if event.Player != "" {
		line += " " + event.Player
	}
	if len(event.Payload) > 0 {
		line += ": " + string(event.Payload)
	}
	fmt.Fprintln(w, line)
}
