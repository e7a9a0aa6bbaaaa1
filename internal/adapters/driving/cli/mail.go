package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

var (
	mailQuery    string
	mailLabels   []string
	mailBody     bool
	mailPageSize int
	mailCursor   string
	mailAll      bool
	mailRefresh  bool
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Read Gmail messages",
}

var mailListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages",
	Long: `List messages matching a Gmail search expression. Defaults to unread mail.

Examples:
  wsbridge mail list
  wsbridge mail list --query "from:alice newer_than:7d" --body`,
	Args: cobra.NoArgs,
	RunE: runMailList,
}

var mailGetCmd = &cobra.Command{
	Use:   "get [message-id]",
	Short: "Show one message",
	Args:  cobra.ExactArgs(1),
	RunE:  runMailGet,
}

var mailSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search messages with a Gmail query",
	Args:  cobra.ExactArgs(1),
	RunE:  runMailSearch,
}

var mailLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List mailbox labels",
	Args:  cobra.NoArgs,
	RunE:  runMailLabels,
}

func init() {
	mailListCmd.Flags().StringVarP(&mailQuery, "query", "q", "", "Gmail search expression (default \"is:unread\")")
	mailListCmd.Flags().StringSliceVarP(&mailLabels, "label", "l", nil, "restrict to label ids")
	mailListCmd.Flags().IntVarP(&mailPageSize, "page-size", "n", 0, "messages per page")
	mailListCmd.Flags().StringVar(&mailCursor, "cursor", "", "continue from a previous page")
	mailListCmd.Flags().BoolVar(&mailAll, "all", false, "fetch every page")
	for _, c := range []*cobra.Command{mailListCmd, mailGetCmd} {
		c.Flags().BoolVar(&mailBody, "body", false, "include bodies and attachment metadata")
	}
	mailGetCmd.Flags().BoolVar(&mailRefresh, "refresh", false, "bypass the cache")

	mailCmd.AddCommand(mailListCmd)
	mailCmd.AddCommand(mailGetCmd)
	mailCmd.AddCommand(mailSearchCmd)
	mailCmd.AddCommand(mailLabelsCmd)
	rootCmd.AddCommand(mailCmd)
}

func runMailList(cmd *cobra.Command, _ []string) error {
	if mailService == nil {
		return errors.New("mail service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	filter := domain.MailFilter{Query: mailQuery, LabelIDs: mailLabels, IncludeBody: mailBody}
	if mailAll {
		messages, err := mailService.ListAll(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list messages: %w", err)
		}
		return outputMessages(cmd, messages, "")
	}

	page, err := mailService.List(ctx, filter, mailPageSize, mailCursor)
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	return outputMessages(cmd, page.Items, page.NextCursor)
}

func runMailGet(cmd *cobra.Command, args []string) error {
	if mailService == nil {
		return errors.New("mail service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	msg, err := mailService.Get(ctx, args[0], domain.MailGetOptions{ForceRefresh: mailRefresh, IncludeBody: mailBody})
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, msg)
	}

	cmd.Printf("Message: %s\n", orNotSet(msg.Subject))
	cmd.Printf("  ID:      %s\n", msg.ID)
	cmd.Printf("  From:    %s\n", msg.From)
	cmd.Printf("  To:      %s\n", msg.To)
	cmd.Printf("  Date:    %s\n", msg.Date)
	cmd.Printf("  Unread:  %t\n", msg.Unread)
	if len(msg.LabelIDs) > 0 {
		cmd.Printf("  Labels:  %v\n", msg.LabelIDs)
	}
	for _, a := range msg.Attachments {
		cmd.Printf("  Attachment: %s (%s, %s)\n", a.Filename, a.MimeType, domain.FormatFileSize(a.Size))
	}
	cmd.Println()
	if msg.HasBody {
		cmd.Println(msg.Body)
	} else {
		cmd.Println(msg.Snippet)
	}
	return nil
}

func runMailSearch(cmd *cobra.Command, args []string) error {
	if mailService == nil {
		return errors.New("mail service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	messages, err := mailService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return outputMessages(cmd, messages, "")
}

func runMailLabels(cmd *cobra.Command, _ []string) error {
	if mailService == nil {
		return errors.New("mail service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	labels, err := mailService.Labels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, labels)
	}
	if len(labels) == 0 {
		cmd.Println("No labels found.")
		return nil
	}
	for _, l := range labels {
		counts := ""
		if l.MessagesTotal > 0 {
			counts = fmt.Sprintf("%s messages, %s unread", humanize.Comma(l.MessagesTotal), humanize.Comma(l.MessagesUnread))
		}
		cmd.Printf("  %-30s %-8s %s\n", truncate(l.Name, 30), l.Type, counts)
	}
	return nil
}

func outputMessages(cmd *cobra.Command, messages []domain.MailMessage, cursor string) error {
	if outputJSON {
		return printJSON(cmd, domain.Page[domain.MailMessage]{Items: messages, NextCursor: cursor})
	}
	if len(messages) == 0 {
		cmd.Println("No messages found.")
		return nil
	}

	for i := range messages {
		m := &messages[i]
		flags := " "
		if m.Unread {
			flags = "*"
		}
		if m.HasAttachments {
			flags += "@"
		} else {
			flags += " "
		}
		cmd.Printf("  %s %-30s %-50s %s\n", flags, truncate(m.From, 30), truncate(orNotSet(m.Subject), 50), m.ID)
	}
	printMore(cmd, cursor)
	return nil
}
