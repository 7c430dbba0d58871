package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/store"
)

func runPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := st.Load(ctx, cfg.Board.Name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("board '%s' has not been saved yet", cfg.Board.Name)
	}
	if err != nil {
		return err
	}

	n, err := pushBoard(ctx, b, pushURL, pushToken)
	if err != nil {
		return err
	}
	printSuccess("pushed %s: %d widgets, %s bytes", cfg.Board.Name, len(b.Widgets), store.FormatSize(n))
	return nil
}

// pushBoard replaces the board on a running server and returns the payload size.
func pushBoard(ctx context.Context, b board.Board, serverURL, token string) (int, error) {
	data, err := store.Encode(b)
	if err != nil {
		return 0, err
	}

	url := strings.TrimRight(serverURL, "/") + "/api/board"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pushing board: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return 0, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
		}
		return 0, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return len(data), nil
}
