package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for wsbridge resources.
	uriScheme = "wsbridge://"
)

// registerResources registers resource handlers for the configured services.
func (s *Server) registerResources() {
	if s.ports.Contacts != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "profile",
			Name:        "profile",
			Description: "The signed-in user's profile",
			MIMEType:    "application/json",
		}, s.handleProfileResource)
	}

	if s.ports.Drive != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "drive/{fileId}",
			Name:        "drive-file-content",
			Description: "Content of a Drive file",
			MIMEType:    "text/plain",
		}, s.handleFileResource)
	}

	if s.ports.Mail != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "mail/{messageId}",
			Name:        "mail-message-body",
			Description: "Decoded body of a mail message",
			MIMEType:    "text/plain",
		}, s.handleMessageResource)
	}
}

// handleProfileResource returns the signed-in user's profile.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	profile, err := s.ports.Contacts.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	data, err := json.MarshalIndent(ProfileOutput{
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		PhotoURL:    profile.PhotoURL,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFileResource returns the content of a Drive file.
func (s *Server) handleFileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fileID := extractID(req.Params.URI, "drive/")
	if fileID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	data, err := s.ports.Drive.Content(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("getting file content: %w", err)
	}

	contents := &mcp.ResourceContents{URI: req.Params.URI}
	if utf8.Valid(data) {
		contents.MIMEType = "text/plain"
		contents.Text = string(data)
	} else {
		contents.MIMEType = "application/octet-stream"
		contents.Blob = data
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{contents}}, nil
}

// handleMessageResource returns the decoded body of a mail message.
func (s *Server) handleMessageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	messageID := extractID(req.Params.URI, "mail/")
	if messageID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	msg, err := s.ports.Mail.Get(ctx, messageID, domain.MailGetOptions{IncludeBody: true})
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     msg.Body,
		}},
	}, nil
}

// extractID extracts the id from a URI like wsbridge://{kind}{id}.
func extractID(uri, kind string) string {
	prefix := uriScheme + kind
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
