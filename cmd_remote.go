package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/socket"
)

// connect finds the newest running editor and returns a client for it
func connect() (*socket.Client, error) {
	dir := socketDir
	if dir == "" {
		dir = socket.DefaultDir()
	}
	socketPath, _, err := socket.FindRunningInstance(dir)
	if err != nil {
		if errors.Is(err, socket.ErrNoInstance) {
			return nil, fmt.Errorf("no running outliner found in %s", dir)
		}
		return nil, err
	}
	return socket.NewClient(socketPath)
}

func checkResponse(resp *socket.Response) error {
	if !resp.Success {
		return fmt.Errorf("server error: %s", resp.Message)
	}
	return nil
}

// newSnapshotCmd creates the snapshot subcommand
func newSnapshotCmd() *cobra.Command {
	var apply string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the document of a running editor as JSON",
		Long: `Print the document of a running editor as a JSON snapshot.

With --apply the document is replaced by the snapshot in the given file
("-" reads stdin). Lines are matched by id so the caret stays put.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connect()
			if err != nil {
				return err
			}

			if apply != "" {
				var data []byte
				if apply == "-" {
					data, err = io.ReadAll(cmd.InOrStdin())
				} else {
					data, err = os.ReadFile(apply)
				}
				if err != nil {
					return err
				}
				var snap model.Snapshot
				if err := json.Unmarshal(data, &snap); err != nil {
					return fmt.Errorf("failed to parse snapshot: %w", err)
				}
				resp, err := client.ApplySnapshot(snap)
				if err != nil {
					return err
				}
				if err := checkResponse(resp); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d lines (version %d)\n", len(snap.Lines), resp.Version)
				return nil
			}

			resp, err := client.Snapshot()
			if err != nil {
				return err
			}
			if err := checkResponse(resp); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp.Snapshot)
		},
	}
	cmd.Flags().StringVar(&apply, "apply", "", "replace the document with this snapshot file")
	return cmd
}

// newAppendCmd creates the append subcommand
func newAppendCmd() *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "append <text>",
		Short: "Append a line to the document of a running editor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("line text cannot be empty")
			}
			client, err := connect()
			if err != nil {
				return err
			}
			resp, err := client.AppendLine(text, indent)
			if err != nil {
				return err
			}
			if err := checkResponse(resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Line appended")
			return nil
		},
	}
	cmd.Flags().IntVarP(&indent, "indent", "i", 0, "indent level of the new line")
	return cmd
}
