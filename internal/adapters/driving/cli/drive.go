package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

var (
	driveQuery    string
	driveOrderBy  string
	drivePageSize int
	driveCursor   string
	driveAll      bool
	driveRefresh  bool
	driveOutput   string
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Browse Google Drive files",
}

var driveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files",
	Long: `List files, most recently modified first.

The query uses the Drive query language and defaults to "trashed = false".

Examples:
  wsbridge drive list
  wsbridge drive list --query "mimeType = 'application/pdf'" --all`,
	Args: cobra.NoArgs,
	RunE: runDriveList,
}

var driveGetCmd = &cobra.Command{
	Use:   "get [file-id]",
	Short: "Show file metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveGet,
}

var driveSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find files whose name contains text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveSearch,
}

var driveBatchCmd = &cobra.Command{
	Use:   "batch [file-id...]",
	Short: "Resolve many files in one request",
	Long: `Resolve many files at once. Cached files are served locally and the rest
are fetched in a single multiplexed request. Files the provider cannot
return are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDriveBatch,
}

var driveContentCmd = &cobra.Command{
	Use:   "content [file-id]",
	Short: "Download file content",
	Long:  `Download a file's bytes. Google Docs, Sheets and Slides are exported as text.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveContent,
}

func init() {
	driveListCmd.Flags().StringVarP(&driveQuery, "query", "q", "", "Drive query expression")
	driveListCmd.Flags().StringVar(&driveOrderBy, "order-by", "", "sort order (default \"modifiedTime desc\")")
	driveListCmd.Flags().IntVarP(&drivePageSize, "page-size", "n", 0, "files per page")
	driveListCmd.Flags().StringVar(&driveCursor, "cursor", "", "continue from a previous page")
	driveListCmd.Flags().BoolVar(&driveAll, "all", false, "fetch every page")
	driveGetCmd.Flags().BoolVar(&driveRefresh, "refresh", false, "bypass the cache")
	driveContentCmd.Flags().StringVarP(&driveOutput, "output", "o", "", "write to a file instead of stdout")

	driveCmd.AddCommand(driveListCmd)
	driveCmd.AddCommand(driveGetCmd)
	driveCmd.AddCommand(driveSearchCmd)
	driveCmd.AddCommand(driveBatchCmd)
	driveCmd.AddCommand(driveContentCmd)
	rootCmd.AddCommand(driveCmd)
}

func runDriveList(cmd *cobra.Command, _ []string) error {
	if driveService == nil {
		return errors.New("drive service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	filter := domain.DriveFilter{Query: driveQuery, OrderBy: driveOrderBy}
	if driveAll {
		files, err := driveService.ListAll(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
		return outputFiles(cmd, files, "")
	}

	page, err := driveService.List(ctx, filter, drivePageSize, driveCursor)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	return outputFiles(cmd, page.Items, page.NextCursor)
}

func runDriveGet(cmd *cobra.Command, args []string) error {
	if driveService == nil {
		return errors.New("drive service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	file, err := driveService.Get(ctx, args[0], driveRefresh)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, file)
	}

	cmd.Printf("File: %s %s\n", domain.MimeTypeIcon(file.MimeType), file.Name)
	cmd.Printf("  ID:       %s\n", file.ID)
	cmd.Printf("  Type:     %s\n", file.MimeType)
	if !file.IsFolder() {
		cmd.Printf("  Size:     %s\n", domain.FormatFileSize(file.Size))
	}
	if !file.ModifiedTime.IsZero() {
		cmd.Printf("  Modified: %s (%s)\n", file.ModifiedTime.Format("2006-01-02 15:04"), humanize.Time(file.ModifiedTime))
	}
	if file.WebViewLink != "" {
		cmd.Printf("  Link:     %s\n", file.WebViewLink)
	}
	cmd.Printf("  Starred:  %t\n", file.Starred)
	cmd.Printf("  Shared:   %t\n", file.Shared)
	if len(file.Permissions) > 0 {
		cmd.Println("  Permissions:")
		for _, p := range file.Permissions {
			who := p.EmailAddress
			if who == "" {
				who = p.Type
			}
			cmd.Printf("    %s (%s)\n", who, p.Role)
		}
	}
	return nil
}

func runDriveSearch(cmd *cobra.Command, args []string) error {
	if driveService == nil {
		return errors.New("drive service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	files, err := driveService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return outputFiles(cmd, files, "")
}

func runDriveBatch(cmd *cobra.Command, args []string) error {
	if driveService == nil {
		return errors.New("drive service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	files, err := driveService.BatchGet(ctx, args)
	if err != nil {
		return fmt.Errorf("batch get failed: %w", err)
	}
	if err := outputFiles(cmd, files, ""); err != nil {
		return err
	}
	if skipped := len(args) - len(files); skipped > 0 && !outputJSON {
		cmd.Printf("\n%d of %d files could not be resolved.\n", skipped, len(args))
	}
	return nil
}

func runDriveContent(cmd *cobra.Command, args []string) error {
	if driveService == nil {
		return errors.New("drive service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	data, err := driveService.Content(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to download content: %w", err)
	}

	if driveOutput != "" {
		if err := os.WriteFile(driveOutput, data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", driveOutput, err)
		}
		cmd.Printf("Wrote %s to %s\n", humanize.IBytes(uint64(len(data))), driveOutput)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func outputFiles(cmd *cobra.Command, files []domain.DriveFile, cursor string) error {
	if outputJSON {
		return printJSON(cmd, domain.Page[domain.DriveFile]{Items: files, NextCursor: cursor})
	}
	if len(files) == 0 {
		cmd.Println("No files found.")
		return nil
	}

	for i := range files {
		f := &files[i]
		size := ""
		if !f.IsFolder() {
			size = domain.FormatFileSize(f.Size)
		}
		modified := ""
		if !f.ModifiedTime.IsZero() {
			modified = humanize.Time(f.ModifiedTime)
		}
		cmd.Printf("  %s %-40s %10s  %-16s %s\n", domain.MimeTypeIcon(f.MimeType), truncate(f.Name, 40), size, modified, f.ID)
	}
	printMore(cmd, cursor)
	return nil
}
