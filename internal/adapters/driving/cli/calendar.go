package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

var (
	calendarID       string
	calendarFrom     string
	calendarTo       string
	calendarQuery    string
	calendarCollapse bool
	calendarPageSize int
	calendarCursor   string
	calendarAll      bool
	calendarRefresh  bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Browse Google Calendar events",
}

var calendarEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming events",
	Long: `List events between --from and --to. The window defaults to the next 30 days.
Recurring events are expanded into single instances unless --collapse is set.

Dates accept RFC 3339 timestamps or yyyy-mm-dd.`,
	Args: cobra.NoArgs,
	RunE: runCalendarEvents,
}

var calendarGetCmd = &cobra.Command{
	Use:   "get [event-id]",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarGet,
}

var calendarSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search events in the next 90 days",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarSearch,
}

var calendarHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Fetch every event instance in a window",
	Long:  `Fetch every event instance between --from and --to, following all pages.`,
	Args:  cobra.NoArgs,
	RunE:  runCalendarHistory,
}

var calendarCalendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List calendars",
	Args:  cobra.NoArgs,
	RunE:  runCalendarCalendars,
}

func init() {
	for _, c := range []*cobra.Command{calendarEventsCmd, calendarGetCmd, calendarHistoryCmd} {
		c.Flags().StringVarP(&calendarID, "calendar", "c", domain.PrimaryCalendar, "calendar id")
	}
	for _, c := range []*cobra.Command{calendarEventsCmd, calendarHistoryCmd} {
		c.Flags().StringVar(&calendarFrom, "from", "", "window start (default now)")
		c.Flags().StringVar(&calendarTo, "to", "", "window end")
	}
	calendarEventsCmd.Flags().StringVarP(&calendarQuery, "query", "q", "", "free text filter")
	calendarEventsCmd.Flags().BoolVar(&calendarCollapse, "collapse", false, "return recurring series instead of instances")
	calendarEventsCmd.Flags().IntVarP(&calendarPageSize, "page-size", "n", 0, "events per page")
	calendarEventsCmd.Flags().StringVar(&calendarCursor, "cursor", "", "continue from a previous page")
	calendarEventsCmd.Flags().BoolVar(&calendarAll, "all", false, "fetch every page")
	calendarGetCmd.Flags().BoolVar(&calendarRefresh, "refresh", false, "bypass the cache")

	calendarCmd.AddCommand(calendarEventsCmd)
	calendarCmd.AddCommand(calendarGetCmd)
	calendarCmd.AddCommand(calendarSearchCmd)
	calendarCmd.AddCommand(calendarHistoryCmd)
	calendarCmd.AddCommand(calendarCalendarsCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarEvents(cmd *cobra.Command, _ []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}
	from, to, err := parseWindow(calendarFrom, calendarTo)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	filter := domain.EventFilter{
		CalendarID:        calendarID,
		TimeMin:           from,
		TimeMax:           to,
		Query:             calendarQuery,
		CollapseRecurring: calendarCollapse,
	}
	if calendarAll {
		events, err := calendarService.ListAll(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return outputEvents(cmd, events, "")
	}

	page, err := calendarService.List(ctx, filter, calendarPageSize, calendarCursor)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	return outputEvents(cmd, page.Items, page.NextCursor)
}

func runCalendarGet(cmd *cobra.Command, args []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	event, err := calendarService.Get(ctx, calendarID, args[0], calendarRefresh)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, event)
	}

	cmd.Printf("Event: %s\n", orNotSet(event.Summary))
	cmd.Printf("  ID:       %s\n", event.ID)
	cmd.Printf("  Calendar: %s\n", event.CalendarID)
	cmd.Printf("  Start:    %s\n", event.Start)
	cmd.Printf("  End:      %s\n", event.End)
	if event.Location != "" {
		cmd.Printf("  Location: %s\n", event.Location)
	}
	if event.Organizer != "" {
		cmd.Printf("  Organizer: %s\n", event.Organizer)
	}
	if event.Status != "" {
		cmd.Printf("  Status:   %s\n", event.Status)
	}
	if len(event.Recurrence) > 0 {
		cmd.Printf("  Recurrence: %v\n", event.Recurrence)
	}
	if event.Conference != nil {
		for _, ep := range event.Conference.EntryPoints {
			cmd.Printf("  Join (%s): %s\n", ep.Type, ep.URI)
		}
	}
	if len(event.Attendees) > 0 {
		cmd.Println("  Attendees:")
		for _, a := range event.Attendees {
			cmd.Printf("    %s (%s)\n", a.Email, a.ResponseStatus)
		}
	}
	if event.Description != "" {
		cmd.Println()
		cmd.Println(event.Description)
	}
	return nil
}

func runCalendarSearch(cmd *cobra.Command, args []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	events, err := calendarService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return outputEvents(cmd, events, "")
}

func runCalendarHistory(cmd *cobra.Command, _ []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}
	from, to, err := parseWindow(calendarFrom, calendarTo)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	events, err := calendarService.FullHistory(ctx, calendarID, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}
	return outputEvents(cmd, events, "")
}

func runCalendarCalendars(cmd *cobra.Command, _ []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	calendars, err := calendarService.Calendars(ctx)
	if err != nil {
		return fmt.Errorf("failed to list calendars: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, calendars)
	}
	if len(calendars) == 0 {
		cmd.Println("No calendars found.")
		return nil
	}
	for _, c := range calendars {
		marker := " "
		if c.Primary {
			marker = "*"
		}
		cmd.Printf("  %s %-40s %s\n", marker, truncate(c.Summary, 40), c.ID)
	}
	return nil
}

func outputEvents(cmd *cobra.Command, events []domain.CalendarEvent, cursor string) error {
	if outputJSON {
		return printJSON(cmd, domain.Page[domain.CalendarEvent]{Items: events, NextCursor: cursor})
	}
	if len(events) == 0 {
		cmd.Println("No events found.")
		return nil
	}

	for i := range events {
		e := &events[i]
		when := e.Start.String()
		if !e.Start.DateTime.IsZero() {
			when = e.Start.DateTime.Local().Format("Mon 2006-01-02 15:04") + " (" + humanize.Time(e.Start.DateTime) + ")"
		}
		cmd.Printf("  %-45s %-40s %s\n", when, truncate(orNotSet(e.Summary), 40), e.ID)
	}
	printMore(cmd, cursor)
	return nil
}

// parseWindow reads optional --from and --to values. Zero times are left
// for the service to default.
func parseWindow(from, to string) (time.Time, time.Time, error) {
	start, err := parseWhen(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
	}
	end, err := parseWhen(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("--to is before --from")
	}
	return start, end, nil
}

func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateOnly, s, time.Local)
}
