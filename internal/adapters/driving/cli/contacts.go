package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

var (
	contactsPageSize int
	contactsCursor   string
	contactsAll      bool
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Browse Google Contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactsList,
}

var contactsGetCmd = &cobra.Command{
	Use:   "get [resource-name]",
	Short: "Show one contact",
	Long:  `Show one contact by resource name, for example people/c123.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsGet,
}

var contactsSearchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search contacts by name, email or phone",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsSearch,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func init() {
	contactsListCmd.Flags().IntVarP(&contactsPageSize, "page-size", "n", 0, "contacts per page")
	contactsListCmd.Flags().StringVar(&contactsCursor, "cursor", "", "continue from a previous page")
	contactsListCmd.Flags().BoolVar(&contactsAll, "all", false, "fetch every page")

	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsGetCmd)
	contactsCmd.AddCommand(contactsSearchCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(profileCmd)
}

func runContactsList(cmd *cobra.Command, _ []string) error {
	if contactsService == nil {
		return errors.New("contacts service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	if contactsAll {
		contacts, err := contactsService.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list contacts: %w", err)
		}
		return outputContacts(cmd, contacts, "")
	}

	page, err := contactsService.List(ctx, contactsPageSize, contactsCursor)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}
	return outputContacts(cmd, page.Items, page.NextCursor)
}

func runContactsGet(cmd *cobra.Command, args []string) error {
	if contactsService == nil {
		return errors.New("contacts service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	contact, err := contactsService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, contact)
	}

	cmd.Printf("Contact: %s\n", orNotSet(contact.DisplayName))
	cmd.Printf("  Resource: %s\n", contact.ResourceName)
	for _, e := range contact.Emails {
		cmd.Printf("  Email:    %s %s\n", e.Value, typeSuffix(e.Type))
	}
	for _, p := range contact.Phones {
		cmd.Printf("  Phone:    %s %s\n", p.Value, typeSuffix(p.Type))
	}
	if contact.PhotoURL != "" {
		cmd.Printf("  Photo:    %s\n", contact.PhotoURL)
	}
	return nil
}

func runContactsSearch(cmd *cobra.Command, args []string) error {
	if contactsService == nil {
		return errors.New("contacts service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	contacts, err := contactsService.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return outputContacts(cmd, contacts, "")
}

func runProfile(cmd *cobra.Command, _ []string) error {
	if contactsService == nil {
		return errors.New("contacts service not configured")
	}
	ctx := cmd.Context()
	if err := ready(ctx); err != nil {
		return err
	}

	profile, err := contactsService.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, profile)
	}

	cmd.Printf("Name:  %s\n", orNotSet(profile.DisplayName))
	cmd.Printf("Email: %s\n", orNotSet(profile.Email))
	if profile.PhotoURL != "" {
		cmd.Printf("Photo: %s\n", profile.PhotoURL)
	}
	return nil
}

func outputContacts(cmd *cobra.Command, contacts []domain.Contact, cursor string) error {
	if outputJSON {
		return printJSON(cmd, domain.Page[domain.Contact]{Items: contacts, NextCursor: cursor})
	}
	if len(contacts) == 0 {
		cmd.Println("No contacts found.")
		return nil
	}

	for i := range contacts {
		c := &contacts[i]
		cmd.Printf("  %-30s %-35s %s\n", truncate(orNotSet(c.DisplayName), 30), truncate(c.PrimaryEmail(), 35), c.ResourceName)
	}
	printMore(cmd, cursor)
	return nil
}

func typeSuffix(t string) string {
	if t == "" {
		return ""
	}
	return "(" + t + ")"
}
