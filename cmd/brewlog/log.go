package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/brewlog/internal/model"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Work with a brew's event log",
}

var logAddCmd = &cobra.Command{
	Use:   "add <slot> <text>",
	Short: "Append an event to a brew's log",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		eventType, _ := cmd.Flags().GetString("type")

		event, err := mgr.AddEvent(idx, model.EventType(eventType), args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(event)
			return nil
		}
		fmt.Printf("Logged event %d (%s)\n", event.ID, event.Type)
		return nil
	},
}

// parseWhen accepts a date ("2026-03-01") or a full RFC 3339 timestamp.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

var logListCmd = &cobra.Command{
	Use:   "list <slot>",
	Short: "List a brew's log, optionally filtered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		s, err := mgr.Slot(idx)
		if err != nil {
			return err
		}
		if s.Empty() {
			return fmt.Errorf("slot %d (%s) is empty", idx+1, s.Name)
		}

		var filter model.EventFilter
		if types, _ := cmd.Flags().GetString("type"); types != "" {
			for _, t := range strings.Split(types, ",") {
				filter.Types = append(filter.Types, model.EventType(strings.TrimSpace(t)))
			}
		}
		if since, _ := cmd.Flags().GetString("since"); since != "" {
			ts, err := parseWhen(since)
			if err != nil {
				return err
			}
			filter.Since = &ts
		}
		if until, _ := cmd.Flags().GetString("until"); until != "" {
			ts, err := parseWhen(until)
			if err != nil {
				return err
			}
			filter.Until = &ts
		}

		var entries []*model.Event
		for e := range s.Brew.Log.Query(filter) {
			entries = append(entries, e)
		}
		if jsonOutput {
			printJSON(entries)
			return nil
		}
		printEventTable(entries)
		return nil
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <slot> <event-id>",
	Short: "Delete a log entry (requires --yes)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseSlotArg(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[1])
		}
		yes, _ := cmd.Flags().GetBool("yes")

		if err := mgr.DeleteEvent(idx, id, yes); err != nil {
			return err
		}
		fmt.Printf("Deleted event %d\n", id)
		return nil
	},
}

func init() {
	logAddCmd.Flags().StringP("type", "t", "General", "event type")
	logListCmd.Flags().StringP("type", "t", "", "filter by event type (comma-separated)")
	logListCmd.Flags().String("since", "", "only events at or after this time")
	logListCmd.Flags().String("until", "", "only events before this time")
	logDeleteCmd.Flags().BoolP("yes", "y", false, "confirm the deletion")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logDeleteCmd)
}
